package audit

import (
	"sort"

	"github.com/de-tools/storage-audit/pkg/models/domain"
)

// BuildReport sorts the records by subscription name then account name and
// derives the exceeding subset in the same order.
func BuildReport(records []domain.UsageRecord) *domain.Report {
	all := make([]domain.UsageRecord, len(records))
	copy(all, records)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].SubscriptionName != all[j].SubscriptionName {
			return all[i].SubscriptionName < all[j].SubscriptionName
		}
		return all[i].AccountName < all[j].AccountName
	})

	exceeding := make([]domain.UsageRecord, 0)
	for _, r := range all {
		if r.Exceeds {
			exceeding = append(exceeding, r)
		}
	}

	return &domain.Report{
		All:       all,
		Exceeding: exceeding,
	}
}
