package models

import (
	"strings"
	"time"
)

// Plan is a subscription tier. Plans are read here, never sold; billing is
// handled by an external system.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// NormalizePlan maps an arbitrary plan string to a known Plan.
// Unknown or empty values fall back to the free tier.
func NormalizePlan(plan string) Plan {
	switch strings.ToLower(strings.TrimSpace(plan)) {
	case string(PlanPremium):
		return PlanPremium
	default:
		return PlanFree
	}
}

// IsPremium reports whether the plan bypasses the free usage quota.
func (p Plan) IsPremium() bool {
	return p == PlanPremium
}

// Entitlement tracks a user's plan and lifetime free generation usage.
// A row is created lazily, on first resolution, with zero usage.
type Entitlement struct {
	UserID    string    `gorm:"primaryKey;size:64" json:"user_id"`
	Plan      string    `gorm:"size:16;not null" json:"plan"`
	FreeUsage int       `gorm:"not null" json:"free_usage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
