// internal/services/product_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/utils"
)

func TestGetProductByCode(t *testing.T) {
	ctx := context.Background()
	stored := crackers("0722776004623")
	catalog := newFakeCatalog(stored)
	svc := NewProductService(catalog)

	t.Run("UPC-A finds the EAN-13 record", func(t *testing.T) {
		p, err := svc.GetProductByCode(ctx, "722776004623")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, p.ID)
		assert.Equal(t, []string{"722776004623", "0722776004623"}, catalog.lookups[len(catalog.lookups)-1])
	})

	t.Run("spaces and hyphens are ignored", func(t *testing.T) {
		p, err := svc.GetProductByCode(ctx, " 0722-7760-04623 ")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, p.ID)
	})

	t.Run("invalid codes never reach the store", func(t *testing.T) {
		before := len(catalog.lookups)
		for _, code := range []string{"", "abc", "123456789012345"} {
			_, err := svc.GetProductByCode(ctx, code)
			assert.ErrorIs(t, err, ErrInvalidBarcode, code)
		}
		assert.Len(t, catalog.lookups, before)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.GetProductByCode(ctx, "99999999")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		failing := newFakeCatalog()
		failing.findErr = errBoom
		_, err := NewProductService(failing).GetProductByCode(ctx, "12345678")
		assert.ErrorIs(t, err, errBoom)
		assert.NotErrorIs(t, err, ErrProductNotFound)
	})
}

func TestGetSimilarProducts(t *testing.T) {
	ctx := context.Background()
	a, b, c := crackers("0003"), crackers("0001"), crackers("0002")
	beef := crackers("0004")
	beef.CategoryTag = "en:meats"
	svc := NewProductService(newFakeCatalog(a, b, c, beef))

	products, total, err := svc.GetSimilarProducts(ctx, a, utils.PaginationParams{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, products, 1)
	assert.Equal(t, "0001", products[0].Code)

	products, _, err = svc.GetSimilarProducts(ctx, a, utils.PaginationParams{Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "0002", products[0].Code)

	uncategorised := crackers("0005")
	uncategorised.CategoryTag = ""
	products, total, err = svc.GetSimilarProducts(ctx, uncategorised, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Zero(t, total)
}
