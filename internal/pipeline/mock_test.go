package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/seichi-tools/panotabi/internal/model"
	"github.com/seichi-tools/panotabi/pkg/streetview"
)

// --- Catalog Mock ---

type mockCatalogClient struct {
	mock.Mock
}

func (m *mockCatalogClient) Points(ctx context.Context, workID int) ([]model.CatalogPoint, error) {
	args := m.Called(ctx, workID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CatalogPoint), args.Error(1)
}

// --- Street View Mock ---

type mockStreetViewClient struct {
	mock.Mock
}

func (m *mockStreetViewClient) Metadata(ctx context.Context, pt model.GeoPoint, radius int) (*streetview.Result, error) {
	args := m.Called(ctx, pt, radius)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*streetview.Result), args.Error(1)
}
