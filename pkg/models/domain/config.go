package domain

import "strings"

type SelectionMode string

const (
	SelectionSpecificIDs      SelectionMode = "specific"
	SelectionAllSubscriptions SelectionMode = "all"
	SelectionTaggedOnly       SelectionMode = "tagged"
)

// AuditConfig is the immutable set of options every audit component is invoked with
type AuditConfig struct {
	TagName                  string
	DefaultThresholdGB       int
	UseSpecificSubscriptions bool
	SpecificSubscriptionIDs  []string
	CheckAllSubscriptions    bool
	ExcludedStorageAccounts  []string
}

// SelectionMode applies the selection precedence: specific ids (when any are
// given), then all subscriptions, then tagged only.
func (c AuditConfig) SelectionMode() SelectionMode {
	switch {
	case c.UseSpecificSubscriptions && len(c.SpecificSubscriptionIDs) > 0:
		return SelectionSpecificIDs
	case c.CheckAllSubscriptions:
		return SelectionAllSubscriptions
	default:
		return SelectionTaggedOnly
	}
}

// ConflictingSelection reports whether specific ids and all selection were both
// requested, in which case the ids take precedence
func (c AuditConfig) ConflictingSelection() bool {
	return c.UseSpecificSubscriptions && len(c.SpecificSubscriptionIDs) > 0 && c.CheckAllSubscriptions
}

// IsExcluded reports whether the storage account name is on the exclusion list
func (c AuditConfig) IsExcluded(accountName string) bool {
	for _, name := range c.ExcludedStorageAccounts {
		if strings.EqualFold(strings.TrimSpace(name), accountName) {
			return true
		}
	}
	return false
}
