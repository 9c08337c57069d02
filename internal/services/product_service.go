// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/utils"
)

// ProductService looks up catalog products by scanned code.
type ProductService struct {
	catalog CatalogStore
}

func NewProductService(catalog CatalogStore) *ProductService {
	return &ProductService{catalog: catalog}
}

// GetProductByCode tries every equivalent form of code and returns the first
// product found.
func (s *ProductService) GetProductByCode(ctx context.Context, code string) (*models.Product, error) {
	cleaned := utils.CleanBarcode(code)
	if !utils.IsValidBarcode(cleaned) {
		return nil, ErrInvalidBarcode
	}

	product, err := s.catalog.FindProductByCodes(ctx, utils.BarcodeVariants(cleaned))
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", cleaned, err)
	}
	return product, nil
}

// GetSimilarProducts lists other products of the same category.
func (s *ProductService) GetSimilarProducts(ctx context.Context, product *models.Product, params utils.PaginationParams) ([]models.Product, int64, error) {
	if product.CategoryTag == "" {
		return []models.Product{}, 0, nil
	}

	products, total, err := s.catalog.SimilarProducts(ctx, product.CategoryTag, product.ID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch similar products: %w", err)
	}
	return products, total, nil
}
