package domain

import "math"

const bytesPerGB = 1 << 30

// UsageRecord is the outcome of auditing a single storage account
type UsageRecord struct {
	SubscriptionName string  `json:"subscription_name"`
	SubscriptionID   string  `json:"subscription_id"`
	AccountName      string  `json:"account_name"`
	ResourceGroup    string  `json:"resource_group"`
	Location         string  `json:"location"`
	UsedGB           float64 `json:"used_gb"`
	ThresholdGB      int     `json:"threshold_gb"`
	Exceeds          bool    `json:"exceeds"`
}

// NewUsageRecord builds a record and evaluates Exceeds once, against the given threshold
func NewUsageRecord(sub Subscription, account StorageAccount, usedGB float64, thresholdGB int) UsageRecord {
	return UsageRecord{
		SubscriptionName: sub.Name,
		SubscriptionID:   sub.ID,
		AccountName:      account.Name,
		ResourceGroup:    account.ResourceGroup,
		Location:         account.Location,
		UsedGB:           usedGB,
		ThresholdGB:      thresholdGB,
		Exceeds:          usedGB > float64(thresholdGB),
	}
}

// BytesToGB converts a byte count to GiB rounded to two decimal places
func BytesToGB(bytes int64) float64 {
	return math.Round(float64(bytes)/bytesPerGB*100) / 100
}
