package audit

import (
	"context"

	"github.com/de-tools/storage-audit/pkg/models/domain"
	"github.com/stretchr/testify/mock"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *mockProvider) UseSubscription(ctx context.Context, subscriptionID string) (Scope, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Scope), args.Error(1)
}

type mockScope struct {
	mock.Mock
}

func (m *mockScope) ListStorageAccounts(ctx context.Context) ([]domain.StorageAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StorageAccount), args.Error(1)
}

func (m *mockScope) GetBlobCapacityBytes(ctx context.Context, account domain.StorageAccount) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

const gb = int64(1 << 30)

func account(name string) domain.StorageAccount {
	return domain.StorageAccount{
		ID:            "/subscriptions/x/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/" + name,
		Name:          name,
		ResourceGroup: "rg",
		Location:      "westeurope",
	}
}
