package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"inkwell/internal/ai"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/pdftext"
	"inkwell/internal/repository"
	"inkwell/internal/storage"
	"inkwell/internal/validation"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// GenerationResult is returned by every tool method. Usage reflects the
// count after this generation for free users; premium users keep whatever
// the resolver returned.
type GenerationResult struct {
	Creation *models.Creation
	Plan     models.Plan
	Usage    int
}

// GenerationService orchestrates the generation pipeline: validation, quota
// gating, the upstream AI call and persistence.
type GenerationService struct {
	creations    repository.CreationRepository
	entitlements *EntitlementService
	textGen      ai.TextGenerator
	images       ai.ImageClient
	store        storage.ObjectStore
	textTimeout  time.Duration
	imageTimeout time.Duration
}

// NewGenerationService creates a GenerationService.
func NewGenerationService(
	creations repository.CreationRepository,
	entitlements *EntitlementService,
	textGen ai.TextGenerator,
	images ai.ImageClient,
	store storage.ObjectStore,
	textTimeout, imageTimeout time.Duration,
) *GenerationService {
	if textTimeout <= 0 {
		textTimeout = 30 * time.Second
	}
	if imageTimeout <= 0 {
		imageTimeout = 60 * time.Second
	}
	return &GenerationService{
		creations:    creations,
		entitlements: entitlements,
		textGen:      textGen,
		images:       images,
		store:        store,
		textTimeout:  textTimeout,
		imageTimeout: imageTimeout,
	}
}

// toolRun describes one pass through the pipeline. validate runs after the
// identity check and before any entitlement read; generate runs under the
// per-kind deadline and returns the content to persist.
type toolRun struct {
	tool        string
	prompt      string
	publish     bool
	premiumOnly bool
	timeout     time.Duration
	validate    func() error
	generate    func(ctx context.Context) (string, error)
}

// run drives a request through the pipeline: identity, input validation,
// plan and quota gating, the upstream call, then the insert. Nothing is
// persisted and usage is never incremented unless the upstream call and the
// insert both succeed.
func (s *GenerationService) run(ctx context.Context, userID string, tr toolRun) (*GenerationResult, error) {
	if userID == "" {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if tr.validate != nil {
		if err := tr.validate(); err != nil {
			return nil, err
		}
	}

	observability.GenerationRequests.WithLabelValues(tr.tool).Inc()
	start := time.Now()
	defer func() {
		observability.GenerationLatency.WithLabelValues(tr.tool).Observe(time.Since(start).Seconds())
	}()

	plan, used, err := s.entitlements.Resolve(ctx, userID)
	if err != nil {
		observability.GenerationFailures.WithLabelValues(tr.tool, "entitlement").Inc()
		return nil, models.NewInternalError(err)
	}

	if tr.premiumOnly && !plan.IsPremium() {
		return nil, models.NewPlanRestrictionError("This feature is only available to premium users")
	}
	if !QuotaAllows(plan, used, s.entitlements.Limit()) {
		observability.QuotaDenials.Inc()
		return nil, models.NewUsageLimitError("Free usage limit reached. Upgrade to premium to continue.")
	}

	span, genCtx := observability.NewSpan(ctx, "ai.generate", observability.WithClientKind())
	span.AddAttributes(attribute.String("ai.tool", tr.tool))
	genCtx, cancel := context.WithTimeout(genCtx, tr.timeout)
	content, err := tr.generate(genCtx)
	cancel()
	if err != nil {
		span.SetError(err)
		span.End()
		observability.GenerationFailures.WithLabelValues(tr.tool, "upstream").Inc()
		return nil, models.NewGenerationError(err)
	}
	span.End()

	creation := &models.Creation{
		UserID:  userID,
		Prompt:  tr.prompt,
		Content: content,
		Type:    tr.tool,
		Publish: tr.publish,
	}
	if err := s.creations.Create(ctx, creation); err != nil {
		observability.GenerationFailures.WithLabelValues(tr.tool, "persistence").Inc()
		return nil, models.NewPersistenceError(err)
	}

	s.entitlements.RecordUsage(ctx, userID, plan)

	usage := used
	if !plan.IsPremium() {
		usage = used + 1
	}
	return &GenerationResult{Creation: creation, Plan: plan, Usage: usage}, nil
}

// validatePrompt rejects empty and over-long prompts.
func validatePrompt(prompt string) error {
	if prompt == "" {
		return models.NewValidationError("Prompt is required")
	}
	if !validation.ValidPromptLength(prompt) {
		return models.NewValidationError(fmt.Sprintf("Prompt must be at most %d characters", validation.MaxPromptLength))
	}
	return nil
}

// validateImage rejects missing, oversized and non-image uploads.
func validateImage(image []byte, filename string) error {
	if len(image) == 0 {
		return models.NewValidationError("Image file is required")
	}
	if int64(len(image)) > validation.MaxImageSizeBytes {
		return models.NewValidationError("Image file exceeds the 10 MB limit")
	}
	if !validation.AllowedImageFile(filename, "") {
		return models.NewValidationError("Image must be a JPEG, PNG or WebP file")
	}
	return nil
}

// GenerateArticle writes an article of roughly the requested length in words.
func (s *GenerationService) GenerateArticle(ctx context.Context, userID, prompt string, length int) (*GenerationResult, error) {
	prompt = validation.SanitizePrompt(prompt)

	return s.run(ctx, userID, toolRun{
		tool:    models.ToolArticle,
		prompt:  prompt,
		timeout: s.textTimeout,
		validate: func() error {
			if err := validatePrompt(prompt); err != nil {
				return err
			}
			if !validation.ValidArticleLength(length) {
				return models.NewValidationError(fmt.Sprintf("Article length must be between 1 and %d", validation.MaxArticleLength))
			}
			return nil
		},
		generate: func(ctx context.Context) (string, error) {
			return s.textGen.GenerateText(ctx, ai.TextRequest{
				System:      "You are a skilled long-form writer. Write a well-structured article for the given topic.",
				Prompt:      fmt.Sprintf("Write an article about: %s. Target length: about %d words.", prompt, length),
				MaxTokens:   length,
				Temperature: 0.7,
			})
		},
	})
}

// GenerateBlogTitle produces a handful of blog title suggestions.
func (s *GenerationService) GenerateBlogTitle(ctx context.Context, userID, prompt string) (*GenerationResult, error) {
	prompt = validation.SanitizePrompt(prompt)

	return s.run(ctx, userID, toolRun{
		tool:    models.ToolBlogTitle,
		prompt:  prompt,
		timeout: s.textTimeout,
		validate: func() error {
			return validatePrompt(prompt)
		},
		generate: func(ctx context.Context) (string, error) {
			return s.textGen.GenerateText(ctx, ai.TextRequest{
				System:      "You are a copywriter. Suggest catchy blog titles, one per line.",
				Prompt:      fmt.Sprintf("Suggest blog titles for: %s", prompt),
				MaxTokens:   100,
				Temperature: 0.8,
			})
		},
	})
}

// GenerateImage creates an image from the prompt, stores it, and persists
// the public URL as the creation content. Premium only.
func (s *GenerationService) GenerateImage(ctx context.Context, userID, prompt string, publish bool) (*GenerationResult, error) {
	prompt = validation.SanitizePrompt(prompt)

	return s.run(ctx, userID, toolRun{
		tool:        models.ToolImage,
		prompt:      prompt,
		publish:     publish,
		premiumOnly: true,
		timeout:     s.imageTimeout,
		validate: func() error {
			return validatePrompt(prompt)
		},
		generate: func(ctx context.Context) (string, error) {
			data, err := s.images.Generate(ctx, prompt)
			if err != nil {
				return "", err
			}
			return s.storeImage(ctx, data, ".png")
		},
	})
}

// RemoveBackground strips the background from an uploaded image. Premium only.
func (s *GenerationService) RemoveBackground(ctx context.Context, userID string, image []byte, filename string) (*GenerationResult, error) {
	return s.run(ctx, userID, toolRun{
		tool:        models.ToolBackgroundRemoval,
		prompt:      "Remove background from image",
		premiumOnly: true,
		timeout:     s.imageTimeout,
		validate: func() error {
			return validateImage(image, filename)
		},
		generate: func(ctx context.Context) (string, error) {
			data, err := s.images.RemoveBackground(ctx, image, filename)
			if err != nil {
				return "", err
			}
			return s.storeImage(ctx, data, ".png")
		},
	})
}

// RemoveObject erases the described object from an uploaded image. Premium only.
func (s *GenerationService) RemoveObject(ctx context.Context, userID string, image []byte, filename, object string) (*GenerationResult, error) {
	object = validation.SanitizePrompt(object)

	return s.run(ctx, userID, toolRun{
		tool:        models.ToolObjectRemoval,
		prompt:      fmt.Sprintf("Removed %s from image", object),
		premiumOnly: true,
		timeout:     s.imageTimeout,
		validate: func() error {
			if err := validateImage(image, filename); err != nil {
				return err
			}
			if object == "" {
				return models.NewValidationError("Object description is required")
			}
			if !validation.ValidPromptLength(object) {
				return models.NewValidationError(fmt.Sprintf("Object description must be at most %d characters", validation.MaxPromptLength))
			}
			return nil
		},
		generate: func(ctx context.Context) (string, error) {
			data, err := s.images.RemoveObject(ctx, image, filename, object)
			if err != nil {
				return "", err
			}
			return s.storeImage(ctx, data, ".png")
		},
	})
}

// ReviewResume extracts the text of an uploaded PDF resume and asks the text
// model for a review. Premium only; the PDF is capped at 5 MB.
func (s *GenerationService) ReviewResume(ctx context.Context, userID string, file io.ReaderAt, size int64) (*GenerationResult, error) {
	var text string

	return s.run(ctx, userID, toolRun{
		tool:        models.ToolResumeReview,
		prompt:      "Review the uploaded resume",
		premiumOnly: true,
		timeout:     s.textTimeout,
		validate: func() error {
			if size <= 0 {
				return models.NewValidationError("Resume file is required")
			}
			if size > validation.MaxResumeSizeBytes {
				return models.NewValidationError("Resume file exceeds the 5 MB limit")
			}
			extracted, err := pdftext.Extract(file, size)
			if err != nil {
				return models.NewValidationError("Could not read the uploaded PDF")
			}
			text = extracted
			return nil
		},
		generate: func(ctx context.Context) (string, error) {
			return s.textGen.GenerateText(ctx, ai.TextRequest{
				System:      "You are an experienced recruiter. Review the resume and point out strengths, weaknesses and concrete improvements.",
				Prompt:      fmt.Sprintf("Review this resume:\n\n%s", text),
				MaxTokens:   1000,
				Temperature: 0.7,
			})
		},
	})
}

// storeImage uploads the image bytes and returns the public URL. A storage
// failure happens before anything is persisted, so it surfaces as a
// generation failure.
func (s *GenerationService) storeImage(ctx context.Context, data []byte, ext string) (string, error) {
	key := fmt.Sprintf("creations/%s%s", uuid.NewString(), ext)
	url, err := s.store.Put(ctx, key, data)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return url, nil
}
