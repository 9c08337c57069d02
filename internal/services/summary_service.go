// internal/services/summary_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/config"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
)

const summarySystemPrompt = "You are an expert sustainability and nutrition analyst. " +
	"Write a concise, factual summary of at most 120 words for a shopper. " +
	"Use only the data given. Do not invent numbers."

// Summarizer turns a prompt into summary text.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
	Model() string
}

// OpenAISummarizer calls an OpenAI compatible chat completion endpoint.
type OpenAISummarizer struct {
	client    *openai.Client
	model     string
	maxTokens int
}

var _ Summarizer = (*OpenAISummarizer)(nil)

func NewOpenAISummarizer(cfg config.SummaryConfig) *OpenAISummarizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	return &OpenAISummarizer{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

func (o *OpenAISummarizer) Model() string {
	return o.model
}

func (o *OpenAISummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxCompletionTokens: o.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("chat completion returned empty text")
	}
	return text, nil
}

// SummaryService returns a cached summary per product, generating one only
// when none matches the current score.
type SummaryService struct {
	summarizer Summarizer
	store      SummaryStore
	timeout    time.Duration
}

// NewSummaryService accepts a nil summarizer; every generation then fails
// with ErrSummaryUnavailable while cached summaries are still served.
func NewSummaryService(summarizer Summarizer, store SummaryStore, timeout time.Duration) *SummaryService {
	return &SummaryService{
		summarizer: summarizer,
		store:      store,
		timeout:    timeout,
	}
}

// GetOrGenerate returns the stored summary of the scanned product when it was
// written for the same total score and calculation version, and otherwise
// generates a new one. The new summary is stored only when store is true.
func (s *SummaryService) GetOrGenerate(ctx context.Context, product *models.Product, data *ScanResult, store bool) (string, error) {
	if data.SustainabilityScores == nil {
		return "", fmt.Errorf("%w: score required", ErrSummaryUnavailable)
	}
	scores := data.SustainabilityScores

	cached, err := s.store.FindSummary(ctx, product.ID)
	switch {
	case err == nil:
		if cached.TotalScore == scores.TotalScore && cached.CalculationVersion == scores.CalculationVersion {
			logrus.WithField("code", product.Code).Debug("Using cached summary")
			return cached.Summary, nil
		}
	case !errors.Is(err, ErrSummaryNotFound):
		logrus.WithFields(logrus.Fields{
			"code":  product.Code,
			"error": err.Error(),
		}).Warn("Failed to read cached summary")
	}

	if s.summarizer == nil {
		return "", ErrSummaryUnavailable
	}

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.summarizer.Summarize(genCtx, BuildSummaryPrompt(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummaryUnavailable, err)
	}

	if !store {
		return text, nil
	}

	summary := &models.ProductSummary{
		ProductID:          product.ID,
		Summary:            text,
		AIModel:            s.summarizer.Model(),
		CalculationVersion: scores.CalculationVersion,
		TotalScore:         scores.TotalScore,
		GeneratedAt:        time.Now(),
	}
	if err := s.store.SaveSummary(ctx, summary); err != nil {
		logrus.WithFields(logrus.Fields{
			"code":  product.Code,
			"error": err.Error(),
		}).Warn("Failed to cache summary")
	}
	return text, nil
}

// BuildSummaryPrompt renders the scan data as a plain text prompt.
func BuildSummaryPrompt(data *ScanResult) string {
	var b strings.Builder
	p := data.Product

	b.WriteString("# PRODUCT INFORMATION\n")
	fmt.Fprintf(&b, "Product: %s\n", orUnknown(p.ProductName))
	fmt.Fprintf(&b, "Brand: %s\n", orUnknown(p.Brand))
	fmt.Fprintf(&b, "Category: %s\n", orUnknown(p.PrimaryCategory))
	if p.Price != nil {
		fmt.Fprintf(&b, "Price: $%.2f\n", *p.Price)
	}

	if s := data.SustainabilityScores; s != nil {
		b.WriteString("\n# SUSTAINABILITY ANALYSIS\n")
		fmt.Fprintf(&b, "Overall Score: %d/100 (Grade %s, confidence %s)\n", s.TotalScore, s.Grade, s.Confidence)
		m := s.Metrics
		if m.RawMaterials.Score != nil {
			fmt.Fprintf(&b, "- Raw Materials: %d points (CO2: %s kg/kg)\n", *m.RawMaterials.Score, formatOptional(m.RawMaterials.CO2KgPerKg))
		}
		if m.Packaging.Score != nil {
			fmt.Fprintf(&b, "- Packaging: %d points\n", *m.Packaging.Score)
		}
		if m.Transportation.Score != nil {
			fmt.Fprintf(&b, "- Transportation: %d points (%s km by %s)\n", *m.Transportation.Score, formatOptional(m.Transportation.DistanceKm), m.Transportation.TransportMode)
		}
		if m.ClimateEfficiency.Score != nil {
			fmt.Fprintf(&b, "- Climate Efficiency: %d points (%s kg CO2/100 cal, rating: %s)\n",
				*m.ClimateEfficiency.Score, formatOptional(m.ClimateEfficiency.CO2Per100Calories), m.ClimateEfficiency.EfficiencyRating)
		}
	}

	if a := data.IngredientsAnalysis; a != nil && a.DataAvailable {
		b.WriteString("\n# INGREDIENT HEALTH ANALYSIS\n")
		fmt.Fprintf(&b, "Total Ingredients: %d\n", a.Summary.Total)
		fmt.Fprintf(&b, "- Good: %d\n- Caution: %d\n- Harmful: %d\n", a.Summary.Good, a.Summary.Caution, a.Summary.Harmful)

		listed := 0
		for _, ing := range a.Ingredients {
			if ing.Classification != models.HealthHarmful || listed == 3 {
				continue
			}
			if listed == 0 {
				b.WriteString("Harmful ingredients:\n")
			}
			concern := ing.HealthConcerns
			if concern == "" {
				concern = "Health concern"
			}
			fmt.Fprintf(&b, "  - %s: %s\n", ing.Name, concern)
			listed++
		}
	}

	if len(data.Recommendations) > 0 {
		b.WriteString("\n# BETTER ALTERNATIVES\n")
		for i, rec := range data.Recommendations {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "%d. %s by %s\n", i+1, orUnknown(rec.Product.ProductName), orUnknown(rec.Product.Brand))
			fmt.Fprintf(&b, "   - Score: %d/100 (Grade %s)\n", rec.SustainabilityScore, rec.Grade)
			fmt.Fprintf(&b, "   - Improvement: +%d points\n", rec.ScoreImprovement)
			fmt.Fprintf(&b, "   - Why: %s\n", rec.Reason)
		}
	}

	b.WriteString("\nSummarise the product's environmental impact, its health profile and whether a listed alternative is worth choosing.")
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func formatOptional(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}
