package mocks

import (
	"context"

	"catalog-manager/core/reconcile"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of reconcile.Store
type Store struct {
	mock.Mock
}

func (m *Store) CreateVariant(ctx context.Context, productID string, input reconcile.CreateVariantInput) (string, error) {
	args := m.Called(ctx, productID, input)
	return args.String(0), args.Error(1)
}

func (m *Store) DeleteVariant(ctx context.Context, variantID string) error {
	args := m.Called(ctx, variantID)
	return args.Error(0)
}

// VariantLoader is a mock implementation of reconcile.VariantLoader
type VariantLoader struct {
	mock.Mock
}

func (m *VariantLoader) LoadVariants(ctx context.Context, productID string) ([]reconcile.Variant, error) {
	args := m.Called(ctx, productID)
	if variants, ok := args.Get(0).([]reconcile.Variant); ok {
		return variants, args.Error(1)
	}
	return nil, args.Error(1)
}
