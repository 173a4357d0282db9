// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	NumCreations int
	ShouldClean  bool
	PremiumRatio float64
}

var articleTopics = []string{
	"the future of remote work", "learning a language as an adult",
	"urban gardening on a budget", "how compilers optimize loops",
	"the history of typography", "training for a first marathon",
	"sourdough for impatient people", "what makes cities walkable",
	"home espresso without the hype", "backyard astronomy basics",
}

// Seed populates the database with demo users, entitlements and creations.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users and %d creations...", opts.NumUsers, opts.NumCreations)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	userIDs, err := createEntitlements(db, opts)
	if err != nil {
		return fmt.Errorf("failed to create entitlements: %w", err)
	}
	log.Printf("Created %d entitlements", len(userIDs))

	count, err := createCreations(db, userIDs, opts.NumCreations)
	if err != nil {
		return fmt.Errorf("failed to create creations: %w", err)
	}
	log.Printf("Created %d creations", count)

	return nil
}

func clearData(db *gorm.DB) error {
	if err := db.Exec("DELETE FROM creations").Error; err != nil {
		return err
	}
	return db.Exec("DELETE FROM entitlements").Error
}

func createEntitlements(db *gorm.DB, opts Options) ([]string, error) {
	ratio := opts.PremiumRatio
	if ratio <= 0 {
		ratio = 0.3
	}

	userIDs := make([]string, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		userID := fmt.Sprintf("user_%s", strings.ToLower(gofakeit.LetterN(12)))

		plan := models.PlanFree
		usage := rand.Intn(11)
		if rand.Float64() < ratio {
			plan = models.PlanPremium
			usage = 0
		}

		ent := models.Entitlement{
			UserID:    userID,
			Plan:      string(plan),
			FreeUsage: usage,
		}
		if err := db.Create(&ent).Error; err != nil {
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, nil
}

func createCreations(db *gorm.DB, userIDs []string, num int) (int, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	created := 0
	for i := 0; i < num; i++ {
		userID := userIDs[rand.Intn(len(userIDs))]
		creation := buildCreation(userID, userIDs)
		if err := db.Create(creation).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func buildCreation(userID string, allUserIDs []string) *models.Creation {
	topic := articleTopics[rand.Intn(len(articleTopics))]

	creation := &models.Creation{
		UserID: userID,
		// spread created_at over the last 90 days
		CreatedAt: time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour),
	}

	switch rand.Intn(4) {
	case 0:
		creation.Type = models.ToolArticle
		creation.Prompt = fmt.Sprintf("Write an article about %s", topic)
		creation.Content = gofakeit.Paragraph(3, 4, 12, "\n\n")
	case 1:
		creation.Type = models.ToolBlogTitle
		creation.Prompt = fmt.Sprintf("Suggest blog titles for: %s", topic)
		creation.Content = fmt.Sprintf("1. %s\n2. %s\n3. %s",
			gofakeit.Sentence(6), gofakeit.Sentence(6), gofakeit.Sentence(6))
	case 2:
		creation.Type = models.ToolImage
		creation.Prompt = gofakeit.Sentence(8)
		creation.Content = fmt.Sprintf("https://picsum.photos/seed/%s/1024/1024", gofakeit.UUID())
		creation.Publish = rand.Float64() < 0.7
	default:
		creation.Type = models.ToolBackgroundRemoval
		creation.Prompt = "Remove background from image"
		creation.Content = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	// published creations pick up some likes
	if creation.Publish {
		likes := make([]string, 0)
		for _, id := range allUserIDs {
			if id != userID && rand.Float64() < 0.2 {
				likes = append(likes, id)
			}
		}
		creation.Likes = datatypes.JSONSlice[string](likes)
	}

	return creation
}
