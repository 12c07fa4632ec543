package audit

import (
	"context"

	"github.com/de-tools/storage-audit/pkg/models/domain"
)

// Provider is the cloud-side entry point of an audit, already authenticated
type Provider interface {
	// ListSubscriptions returns every subscription visible to the authenticated identity
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
	// UseSubscription switches the active subscription and returns a Scope bound to it
	UseSubscription(ctx context.Context, subscriptionID string) (Scope, error)
}

// Scope exposes the storage APIs of a single subscription
type Scope interface {
	ListStorageAccounts(ctx context.Context) ([]domain.StorageAccount, error)
	// GetBlobCapacityBytes returns the used blob capacity of an account, in bytes
	GetBlobCapacityBytes(ctx context.Context, account domain.StorageAccount) (int64, error)
}
