package handler

import (
	"context"

	"mini-storefront/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockStorefrontService is a mock implementation of StorefrontService.
type MockStorefrontService struct {
	mock.Mock
}

func (m *MockStorefrontService) Products() []model.Product {
	args := m.Called()
	return args.Get(0).([]model.Product)
}

func (m *MockStorefrontService) Categories() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockStorefrontService) Browse(criteria model.FilterCriteria) []model.Product {
	args := m.Called(criteria)
	return args.Get(0).([]model.Product)
}

func (m *MockStorefrontService) DefaultCriteria() model.FilterCriteria {
	return model.DefaultFilterCriteria()
}

func (m *MockStorefrontService) Cart(ctx context.Context, key string) model.Cart {
	args := m.Called(ctx, key)
	return args.Get(0).(model.Cart)
}

func (m *MockStorefrontService) AddToCart(ctx context.Context, key, productID string) (model.Cart, error) {
	args := m.Called(ctx, key, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Cart), args.Error(1)
}

func (m *MockStorefrontService) RemoveFromCart(ctx context.Context, key, productID string) (model.Cart, error) {
	args := m.Called(ctx, key, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Cart), args.Error(1)
}

var (
	orange = model.Product{ID: "p1", Name: "Orange", Price: decimal.RequireFromString("1.5"), Category: "fruits", ImageRef: "orange.jpg"}
	laptop = model.Product{ID: "p5", Name: "Laptop", Price: decimal.NewFromInt(1800), Category: "electronics", ImageRef: "laptop.jpg"}
)

// criteriaMatching matches FilterCriteria by value, comparing prices numerically.
func criteriaMatching(want model.FilterCriteria) interface{} {
	return mock.MatchedBy(func(got model.FilterCriteria) bool {
		return got.SearchTerm == want.SearchTerm &&
			got.Category == want.Category &&
			got.MinPrice.Equal(want.MinPrice) &&
			got.MaxPrice.Equal(want.MaxPrice)
	})
}
