package audit

import "errors"

// Fatal conditions; any of these aborts the run.
var (
	ErrAuthentication          = errors.New("authentication failed")
	ErrSubscriptionList        = errors.New("failed to list subscriptions")
	ErrNoMatchingSubscriptions = errors.New("no subscriptions matched the selection criteria")
)
