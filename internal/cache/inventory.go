package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	OwnerCreationsPrefix = "creations:owner:%s"
	PublishedFeedKey     = "creations:published"
	EntitlementPrefix    = "entitlement:%s"
)

const (
	OwnerCreationsTTL = 5 * time.Minute
	PublishedFeedTTL  = 2 * time.Minute
	EntitlementTTL    = time.Minute
)

func OwnerCreationsKey(userID string) string {
	return fmt.Sprintf(OwnerCreationsPrefix, userID)
}

func EntitlementKey(userID string) string {
	return fmt.Sprintf(EntitlementPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateCreations drops both the owner feed and the published feed.
// Called after any creation mutation, including like toggles.
func InvalidateCreations(ctx context.Context, userID string) {
	Invalidate(ctx, OwnerCreationsKey(userID))
	Invalidate(ctx, PublishedFeedKey)
}

func InvalidateEntitlement(ctx context.Context, userID string) {
	Invalidate(ctx, EntitlementKey(userID))
}
