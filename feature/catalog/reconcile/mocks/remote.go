package mocks

import (
	"context"

	"catalog-sync/feature/catalog/models"

	"github.com/stretchr/testify/mock"
)

// RemoteCatalog is a mock implementation of reconcile.RemoteCatalog
type RemoteCatalog struct {
	mock.Mock
}

func (m *RemoteCatalog) ListProducts(ctx context.Context) ([]models.RemoteProduct, error) {
	args := m.Called(ctx)
	if products, ok := args.Get(0).([]models.RemoteProduct); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RemoteCatalog) CreateProduct(ctx context.Context, p models.OutboundProduct) (*models.RemoteProduct, error) {
	args := m.Called(ctx, p)
	if res, ok := args.Get(0).(*models.RemoteProduct); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RemoteCatalog) ReplaceProduct(ctx context.Context, id int64, p models.OutboundProduct) (*models.RemoteProduct, error) {
	args := m.Called(ctx, id, p)
	if res, ok := args.Get(0).(*models.RemoteProduct); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RemoteCatalog) UpdateInventory(ctx context.Context, u models.InventoryUpdate) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *RemoteCatalog) ListProductImages(ctx context.Context, productID int64) ([]models.RemoteImage, error) {
	args := m.Called(ctx, productID)
	if images, ok := args.Get(0).([]models.RemoteImage); ok {
		return images, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RemoteCatalog) AddProductImage(ctx context.Context, productID int64, img models.ImagePayload) (*models.RemoteImage, error) {
	args := m.Called(ctx, productID, img)
	if res, ok := args.Get(0).(*models.RemoteImage); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// FileStore is a mock implementation of reconcile.FileStore
type FileStore struct {
	mock.Mock
}

func (m *FileStore) Read(ctx context.Context, ref string) (string, []byte, error) {
	args := m.Called(ctx, ref)
	data, _ := args.Get(1).([]byte)
	return args.String(0), data, args.Error(2)
}

// ImageProber is a mock implementation of reconcile.ImageProber
type ImageProber struct {
	mock.Mock
}

func (m *ImageProber) IsImage(ctx context.Context, url string) bool {
	args := m.Called(ctx, url)
	return args.Bool(0)
}
