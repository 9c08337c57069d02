// internal/services/fakes_test.go
package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
)

var (
	halifax = scoring.Coordinates{Latitude: 44.6488, Longitude: -63.5752}
	toronto = scoring.Coordinates{Latitude: 43.6532, Longitude: -79.3832}

	errBoom = errors.New("boom")
)

func ptr[T any](v T) *T { return &v }

type fakeCatalog struct {
	mu       sync.Mutex
	products []*models.Product
	lookups  [][]string
	origins  map[uuid.UUID]scoring.ResolvedOrigin
	harmful  map[uuid.UUID]int
	findErr  error
}

func newFakeCatalog(products ...*models.Product) *fakeCatalog {
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
	}
	return &fakeCatalog{
		products: products,
		origins:  make(map[uuid.UUID]scoring.ResolvedOrigin),
		harmful:  make(map[uuid.UUID]int),
	}
}

func (f *fakeCatalog) FindProductByCodes(ctx context.Context, codes []string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, codes)
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, code := range codes {
		for _, p := range f.products {
			if p.Code == code {
				row := *p
				return &row, nil
			}
		}
	}
	return nil, ErrProductNotFound
}

func (f *fakeCatalog) SaveGeocodedOrigin(ctx context.Context, productID uuid.UUID, originText string, origin scoring.ResolvedOrigin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.origins[productID] = origin
	return nil
}

func (f *fakeCatalog) SimilarProducts(ctx context.Context, categoryTag string, excludeID uuid.UUID, limit, offset int) ([]models.Product, int64, error) {
	var matches []models.Product
	for _, p := range f.products {
		if p.CategoryTag == categoryTag && p.ID != excludeID {
			matches = append(matches, *p)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Code < matches[j].Code })

	total := int64(len(matches))
	if offset >= len(matches) {
		return []models.Product{}, total, nil
	}
	matches = matches[offset:]
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, total, nil
}

func (f *fakeCatalog) HarmfulIngredientCounts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int)
	for _, id := range productIDs {
		if n, ok := f.harmful[id]; ok {
			counts[id] = n
		}
	}
	return counts, nil
}

type fakeReferenceStore struct {
	mu        sync.Mutex
	factors   []models.EmissionFactor
	materials []models.PackagingMaterial
	labels    []models.Label
	profiles  []models.IngredientProfile
	loads     int
	err       error
}

func newFakeReferenceStore() *fakeReferenceStore {
	return &fakeReferenceStore{
		factors: []models.EmissionFactor{
			{IngredientTag: "en:wheat-flour", KgCO2PerKg: 1.1, Confidence: models.FactorConfidenceHigh},
			{IngredientTag: "en:water", KgCO2PerKg: 0, Confidence: models.FactorConfidenceHigh},
			{IngredientTag: "en:beef", KgCO2PerKg: 25, Confidence: models.FactorConfidenceHigh},
			{IngredientTag: "en:palm-oil", KgCO2PerKg: 3.8, Confidence: models.FactorConfidenceLow},
		},
		materials: []models.PackagingMaterial{
			{Tag: "en:glass", Name: "Glass", EnvironmentalScore: 70, ScoreAdjustment: 5, ProductionKgCO2PerKg: ptr(0.9)},
			{Tag: "en:plastic", Name: "Plastic", EnvironmentalScore: 30, ScoreAdjustment: -10, ProductionKgCO2PerKg: ptr(2.5)},
		},
		labels: []models.Label{
			{Tag: "en:organic", Name: "Organic", Category: models.LabelCategory("environmental"), BonusPoints: 15},
		},
		profiles: []models.IngredientProfile{
			{Tag: "en:wheat-flour", Name: "Wheat flour", HealthClassification: models.HealthGood, VeganStatus: "yes"},
			{Tag: "en:palm-oil", Name: "Palm oil", HealthClassification: models.HealthCaution, HealthConcerns: "High in saturated fat", FromPalmOil: true},
			{Tag: "en:e250", Name: "Sodium nitrite", HealthClassification: models.HealthHarmful, HealthConcerns: "Forms nitrosamines", IsAdditive: true, AdditiveCode: "E250"},
			{Tag: "en:water", Name: "Water"},
		},
	}
}

func (f *fakeReferenceStore) EmissionFactors(ctx context.Context) ([]models.EmissionFactor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return f.factors, nil
}

func (f *fakeReferenceStore) PackagingMaterials(ctx context.Context) ([]models.PackagingMaterial, error) {
	return f.materials, nil
}

func (f *fakeReferenceStore) Labels(ctx context.Context) ([]models.Label, error) {
	return f.labels, nil
}

func (f *fakeReferenceStore) IngredientProfiles(ctx context.Context, tags []string) ([]models.IngredientProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	var out []models.IngredientProfile
	for _, p := range f.profiles {
		if want[p.Tag] {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeScoreStore struct {
	mu         sync.Mutex
	scores     map[uuid.UUID]*models.SustainabilityScore
	breakdowns map[uuid.UUID]*models.ScoreBreakdown
	candidates []ScoredProduct
	saves      int
	saveErr    error
}

func newFakeScoreStore(candidates ...ScoredProduct) *fakeScoreStore {
	return &fakeScoreStore{
		scores:     make(map[uuid.UUID]*models.SustainabilityScore),
		breakdowns: make(map[uuid.UUID]*models.ScoreBreakdown),
		candidates: candidates,
	}
}

func (f *fakeScoreStore) SaveScore(ctx context.Context, score *models.SustainabilityScore, breakdown *models.ScoreBreakdown) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.scores[score.ProductID] = score
	f.breakdowns[breakdown.ProductID] = breakdown
	return nil
}

func (f *fakeScoreStore) FindScore(ctx context.Context, productID uuid.UUID) (*models.SustainabilityScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.scores[productID]; ok {
		return s, nil
	}
	return nil, ErrScoreNotFound
}

func (f *fakeScoreStore) BetterInCategory(ctx context.Context, categoryTag string, aboveScore int, excludeID uuid.UUID, limit int) ([]ScoredProduct, error) {
	var out []ScoredProduct
	for _, c := range f.candidates {
		if c.Product.CategoryTag == categoryTag && c.Score.TotalScore > aboveScore && c.Product.ID != excludeID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score.TotalScore != out[j].Score.TotalScore {
			return out[i].Score.TotalScore > out[j].Score.TotalScore
		}
		return out[i].Product.Code < out[j].Product.Code
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeSummaryStore struct {
	summaries map[uuid.UUID]*models.ProductSummary
	saves     int
}

func newFakeSummaryStore() *fakeSummaryStore {
	return &fakeSummaryStore{summaries: make(map[uuid.UUID]*models.ProductSummary)}
}

func (f *fakeSummaryStore) FindSummary(ctx context.Context, productID uuid.UUID) (*models.ProductSummary, error) {
	if s, ok := f.summaries[productID]; ok {
		return s, nil
	}
	return nil, ErrSummaryNotFound
}

func (f *fakeSummaryStore) SaveSummary(ctx context.Context, summary *models.ProductSummary) error {
	f.saves++
	if existing, ok := f.summaries[summary.ProductID]; ok {
		summary.SummaryVersion = existing.SummaryVersion + 1
	} else {
		summary.SummaryVersion = 1
	}
	f.summaries[summary.ProductID] = summary
	return nil
}

type fakeGeocoder struct {
	mu     sync.Mutex
	origin scoring.ResolvedOrigin
	err    error
	calls  int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, location string) (scoring.ResolvedOrigin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return scoring.ResolvedOrigin{}, f.err
	}
	return f.origin, nil
}

type fakeSummarizer struct {
	text   string
	err    error
	calls  int
	prompt string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeSummarizer) Model() string { return "test-model" }

// crackers is a wheat and water product made in Toronto.
func crackers(code string) *models.Product {
	return &models.Product{
		BaseModel:           models.BaseModel{ID: uuid.New()},
		Code:                code,
		ProductName:         "Water Crackers",
		Brand:               "Prairie Mill",
		Quantity:            "500 g",
		PrimaryCategory:     "Crackers",
		CategoryTag:         "en:crackers",
		ManufacturingPlaces: "Toronto, Ontario, Canada",
		CaloriesPer100g:     ptr(364.0),
		Ingredients: []models.ProductIngredient{
			{IngredientTag: "en:wheat-flour", Name: "wheat flour", Rank: 1, PercentEstimate: ptr(70.0)},
			{IngredientTag: "en:water", Name: "water", Rank: 2, PercentEstimate: ptr(30.0)},
		},
	}
}

func scored(p *models.Product, total int, grade string) ScoredProduct {
	return ScoredProduct{
		Product: *p,
		Score: models.SustainabilityScore{
			ProductID:      p.ID,
			TotalScore:     total,
			Grade:          grade,
			PackagingScore: ptr(5),
		},
	}
}
