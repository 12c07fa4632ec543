package audit

import (
	"fmt"

	"github.com/de-tools/storage-audit/pkg/models/domain"
)

// SelectSubscriptions picks the subscriptions to audit, preserving input order.
// When both specific and all selection are requested a warning is returned and
// the specific ids win.
func SelectSubscriptions(subs []domain.Subscription, cfg domain.AuditConfig) ([]domain.Subscription, []string, error) {
	var warnings []string
	if cfg.ConflictingSelection() {
		warnings = append(warnings,
			"both specific subscription ids and all subscriptions were requested; using the specific ids")
	}

	var selected []domain.Subscription
	switch cfg.SelectionMode() {
	case domain.SelectionSpecificIDs:
		ids := make(map[string]struct{}, len(cfg.SpecificSubscriptionIDs))
		for _, id := range cfg.SpecificSubscriptionIDs {
			ids[id] = struct{}{}
		}
		for _, sub := range subs {
			if _, ok := ids[sub.ID]; ok {
				selected = append(selected, sub)
			}
		}
	case domain.SelectionAllSubscriptions:
		selected = append(selected, subs...)
	default:
		for _, sub := range subs {
			if sub.Tags.Has(cfg.TagName) {
				selected = append(selected, sub)
			}
		}
	}

	if len(selected) == 0 {
		return nil, warnings, fmt.Errorf("%w (mode: %s)", ErrNoMatchingSubscriptions, cfg.SelectionMode())
	}
	return selected, warnings, nil
}
