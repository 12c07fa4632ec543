package domain

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

type FailureScope string

const (
	FailureScopeSubscription FailureScope = "subscription"
	FailureScopeAccount      FailureScope = "account"
)

// Failure is a non-fatal error captured while auditing one subscription or account
type Failure struct {
	Scope        FailureScope
	Subscription string
	Account      string
	Err          error
}

func (f Failure) Error() string {
	if f.Scope == FailureScopeAccount {
		return fmt.Sprintf("subscription %s, storage account %s: %v", f.Subscription, f.Account, f.Err)
	}
	return fmt.Sprintf("subscription %s: %v", f.Subscription, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report represents the outcome of a complete audit run
type Report struct {
	// All holds every successfully audited account, sorted by subscription and account name
	All []UsageRecord
	// Exceeding is the subset of All whose usage is above the threshold, in the same order
	Exceeding []UsageRecord
	Warnings  []string
	Failures  []Failure
}

// FailureErr folds the per-item failures into a single error, or nil when there were none
func (r *Report) FailureErr() error {
	var result *multierror.Error
	for _, f := range r.Failures {
		result = multierror.Append(result, f)
	}
	return result.ErrorOrNil()
}
