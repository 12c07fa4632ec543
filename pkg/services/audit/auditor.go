package audit

import (
	"context"
	"fmt"

	"github.com/de-tools/storage-audit/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Selection is the preview of which subscriptions an audit would cover
type Selection struct {
	Subscription domain.Subscription `json:"-"`
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	ThresholdGB  int                 `json:"threshold_gb"`
}

type Auditor struct {
	provider  Provider
	config    domain.AuditConfig
	collector *Collector
}

func NewAuditor(provider Provider, config domain.AuditConfig) *Auditor {
	return &Auditor{
		provider:  provider,
		config:    config,
		collector: NewCollector(config),
	}
}

// Select lists the subscriptions and resolves the threshold of each selected one.
// Every returned error is fatal to the run.
func (a *Auditor) Select(ctx context.Context) ([]Selection, []string, error) {
	logger := zerolog.Ctx(ctx)

	subs, err := a.provider.ListSubscriptions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSubscriptionList, err)
	}
	logger.Info().Int("count", len(subs)).Msg("subscriptions found")

	selected, warnings, err := SelectSubscriptions(subs, a.config)
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}
	if err != nil {
		return nil, warnings, err
	}

	selections := make([]Selection, 0, len(selected))
	for _, sub := range selected {
		threshold, warning := ResolveThreshold(sub, a.config.TagName, a.config.DefaultThresholdGB)
		if warning != "" {
			logger.Warn().Msg(warning)
			warnings = append(warnings, warning)
		}
		selections = append(selections, Selection{
			Subscription: sub,
			ID:           sub.ID,
			Name:         sub.Name,
			ThresholdGB:  threshold,
		})
	}
	return selections, warnings, nil
}

// Run performs a complete audit. Only fatal conditions are returned as errors;
// per-subscription and per-account failures are recorded on the report.
func (a *Auditor) Run(ctx context.Context) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	selections, warnings, err := a.Select(ctx)
	if err != nil {
		return nil, err
	}

	var (
		records  []domain.UsageRecord
		failures []domain.Failure
	)
	for _, sel := range selections {
		sub := sel.Subscription
		logger.Info().
			Str("subscription", sub.Name).
			Str("subscription_id", sub.ID).
			Int("threshold_gb", sel.ThresholdGB).
			Msg("auditing subscription")

		scope, err := a.provider.UseSubscription(ctx, sub.ID)
		if err != nil {
			logger.Warn().Err(err).Str("subscription", sub.Name).Msg("failed to switch subscription, skipping")
			failures = append(failures, domain.Failure{
				Scope:        domain.FailureScopeSubscription,
				Subscription: sub.Name,
				Err:          fmt.Errorf("switch subscription: %w", err),
			})
			continue
		}

		result := a.collector.CollectSubscription(ctx, scope, sub, sel.ThresholdGB)
		records = append(records, result.Records...)
		failures = append(failures, result.Failures...)
	}

	report := BuildReport(records)
	report.Warnings = warnings
	report.Failures = failures

	logger.Info().
		Int("accounts", len(report.All)).
		Int("exceeding", len(report.Exceeding)).
		Int("failures", len(report.Failures)).
		Msg("audit completed")
	return report, nil
}
