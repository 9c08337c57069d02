// internal/handlers/product.go
package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/i18n"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/services"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/utils"
)

type ProductScanner interface {
	Scan(ctx context.Context, req services.ScanRequest) (*services.ScanResult, error)
}

type ProductFinder interface {
	GetProductByCode(ctx context.Context, code string) (*models.Product, error)
	GetSimilarProducts(ctx context.Context, product *models.Product, params utils.PaginationParams) ([]models.Product, int64, error)
}

type ProductScorer interface {
	ScoreProduct(ctx context.Context, product *models.Product, destination *scoring.Coordinates) (scoring.Result, error)
	StoredScore(ctx context.Context, product *models.Product) (*models.SustainabilityScore, error)
}

type ProductHandler struct {
	scanner      ProductScanner
	products     ProductFinder
	scorer       ProductScorer
	similarLimit int
}

func NewProductHandler(scanner ProductScanner, products ProductFinder, scorer ProductScorer, similarLimit int) *ProductHandler {
	return &ProductHandler{
		scanner:      scanner,
		products:     products,
		scorer:       scorer,
		similarLimit: similarLimit,
	}
}

// locationQuery holds an explicit destination for the transportation score.
type locationQuery struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

// GET /v1/products/:code
func (h *ProductHandler) GetProduct(c *gin.Context) {
	req := services.ScanRequest{
		Code: c.Param("code"),
		Lang: utils.GetLangFromContext(c),
	}

	flags := []struct {
		name   string
		def    bool
		target *bool
	}{
		{"include_score", true, &req.IncludeScore},
		{"include_ingredients", true, &req.IncludeIngredients},
		{"include_recommendations", true, &req.IncludeRecommendations},
		{"include_summary", false, &req.IncludeSummary},
	}
	for _, f := range flags {
		value, err := queryBool(c, f.name, f.def)
		if err != nil {
			utils.ValidationErrorResponse(c, []utils.ValidationError{{
				Field:   f.name,
				Tag:     "boolean",
				Message: f.name + " must be true or false",
			}})
			return
		}
		*f.target = value
	}

	destination, ok := h.destination(c)
	if !ok {
		return
	}
	req.Destination = destination

	result, err := h.scanner.Scan(c.Request.Context(), req)
	if err != nil {
		h.productError(c, req.Code, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /v1/products/:code/score
// A lat/lon override is scored and returned but never stored.
func (h *ProductHandler) ScoreProduct(c *gin.Context) {
	code := c.Param("code")

	destination, ok := h.destination(c)
	if !ok {
		return
	}

	product, err := h.products.GetProductByCode(c.Request.Context(), code)
	if err != nil {
		h.productError(c, code, err)
		return
	}

	result, err := h.scorer.ScoreProduct(c.Request.Context(), product, destination)
	if err != nil {
		logrus.WithError(err).WithField("code", product.Code).Error("Failed to score product")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, services.NewSustainabilityScores(result))
}

// GET /v1/products/:code/score
func (h *ProductHandler) GetStoredScore(c *gin.Context) {
	code := c.Param("code")

	product, err := h.products.GetProductByCode(c.Request.Context(), code)
	if err != nil {
		h.productError(c, code, err)
		return
	}

	score, err := h.scorer.StoredScore(c.Request.Context(), product)
	if err != nil {
		if errors.Is(err, services.ErrScoreNotFound) {
			utils.NotFoundResponse(c, "score")
			return
		}
		logrus.WithError(err).WithField("code", product.Code).Error("Failed to load score")
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, score)
}

// GET /v1/products/:code/similar
func (h *ProductHandler) GetSimilarProducts(c *gin.Context) {
	code := c.Param("code")
	params := utils.GetPaginationParams(c, h.similarLimit)

	product, err := h.products.GetProductByCode(c.Request.Context(), code)
	if err != nil {
		h.productError(c, code, err)
		return
	}

	products, total, err := h.products.GetSimilarProducts(c.Request.Context(), product, params)
	if err != nil {
		logrus.WithError(err).WithField("code", product.Code).Error("Failed to list similar products")
		utils.InternalErrorResponse(c, "")
		return
	}

	cards := make([]services.ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, services.NewProductCard(p))
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(cards, total, params))
}

// destination reads the optional lat/lon pair. Both or neither must be given.
// It writes the error response itself and reports false on invalid input.
func (h *ProductHandler) destination(c *gin.Context) (*scoring.Coordinates, bool) {
	lang := utils.GetLangFromContext(c)
	latText, lonText := c.Query("lat"), c.Query("lon")
	if latText == "" && lonText == "" {
		return nil, true
	}

	invalid := func() (*scoring.Coordinates, bool) {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyInvalidLocation), nil)
		return nil, false
	}

	if latText == "" || lonText == "" {
		return invalid()
	}

	lat, latErr := strconv.ParseFloat(latText, 64)
	lon, lonErr := strconv.ParseFloat(lonText, 64)
	if latErr != nil || lonErr != nil {
		return invalid()
	}

	query := locationQuery{Latitude: lat, Longitude: lon}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&query)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return nil, false
	}

	return &scoring.Coordinates{Latitude: lat, Longitude: lon}, true
}

func (h *ProductHandler) productError(c *gin.Context, code string, err error) {
	lang := utils.GetLangFromContext(c)
	switch {
	case errors.Is(err, services.ErrInvalidBarcode):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyInvalidBarcode), nil)
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "product")
	default:
		logrus.WithError(err).WithField("code", code).Error("Failed to load product")
		utils.InternalErrorResponse(c, "")
	}
}

func queryBool(c *gin.Context, name string, def bool) (bool, error) {
	value, ok := c.GetQuery(name)
	if !ok || value == "" {
		return def, nil
	}
	return strconv.ParseBool(value)
}
