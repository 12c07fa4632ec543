package api

import "github.com/de-tools/storage-audit/pkg/models/domain"

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

type Failure struct {
	Scope        string `json:"scope"`
	Subscription string `json:"subscription"`
	Account      string `json:"account,omitempty"`
	Error        string `json:"error"`
}

type AuditReport struct {
	All       []UsageRecord `json:"all"`
	Exceeding []UsageRecord `json:"exceeding"`
	Warnings  []string      `json:"warnings"`
	Failures  []Failure     `json:"failures"`
}

type Subscription struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ThresholdGB int    `json:"threshold_gb"`
}

type Error struct {
	Error string `json:"error"`
}

func NewAuditReport(report *domain.Report) AuditReport {
	resp := AuditReport{
		All:       toRecords(report.All),
		Exceeding: toRecords(report.Exceeding),
		Warnings:  append([]string{}, report.Warnings...),
		Failures:  make([]Failure, 0, len(report.Failures)),
	}
	for _, f := range report.Failures {
		resp.Failures = append(resp.Failures, Failure{
			Scope:        string(f.Scope),
			Subscription: f.Subscription,
			Account:      f.Account,
			Error:        f.Err.Error(),
		})
	}
	return resp
}

func toRecords(records []domain.UsageRecord) []UsageRecord {
	out := make([]UsageRecord, 0, len(records))
	for _, r := range records {
		out = append(out, UsageRecord(r))
	}
	return out
}
