package audit

import (
	"context"
	"fmt"

	"github.com/de-tools/storage-audit/pkg/models/domain"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// SubscriptionResult holds what was gathered for one subscription
type SubscriptionResult struct {
	Records  []domain.UsageRecord
	Failures []domain.Failure
	Excluded int
}

type Collector struct {
	config domain.AuditConfig
}

func NewCollector(config domain.AuditConfig) *Collector {
	return &Collector{config: config}
}

// CollectSubscription fetches blob usage for every non-excluded storage account in
// scope. A listing failure skips the whole subscription; a metric failure skips
// only that account.
func (c *Collector) CollectSubscription(
	ctx context.Context,
	scope Scope,
	sub domain.Subscription,
	thresholdGB int,
) SubscriptionResult {
	logger := zerolog.Ctx(ctx).With().Str("subscription", sub.Name).Logger()

	var result SubscriptionResult
	accounts, err := scope.ListStorageAccounts(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to list storage accounts, skipping subscription")
		result.Failures = append(result.Failures, domain.Failure{
			Scope:        domain.FailureScopeSubscription,
			Subscription: sub.Name,
			Err:          fmt.Errorf("list storage accounts: %w", err),
		})
		return result
	}

	for _, account := range accounts {
		if c.config.IsExcluded(account.Name) {
			logger.Debug().Str("account", account.Name).Msg("storage account excluded")
			result.Excluded++
			continue
		}

		bytes, err := scope.GetBlobCapacityBytes(ctx, account)
		if err != nil {
			logger.Warn().Err(err).Str("account", account.Name).Msg("failed to fetch blob capacity, skipping account")
			result.Failures = append(result.Failures, domain.Failure{
				Scope:        domain.FailureScopeAccount,
				Subscription: sub.Name,
				Account:      account.Name,
				Err:          fmt.Errorf("get blob capacity: %w", err),
			})
			continue
		}
		if bytes < 0 {
			bytes = 0
		}

		record := domain.NewUsageRecord(sub, account, domain.BytesToGB(bytes), thresholdGB)
		logger.Info().
			Str("account", account.Name).
			Str("used", humanize.IBytes(uint64(bytes))).
			Int("threshold_gb", thresholdGB).
			Bool("exceeds", record.Exceeds).
			Msg("storage account audited")
		result.Records = append(result.Records, record)
	}

	return result
}
