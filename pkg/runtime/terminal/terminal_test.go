package terminal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/de-tools/storage-audit/pkg/models/domain"
	"github.com/de-tools/storage-audit/pkg/runtime/terminal/export"
	"github.com/de-tools/storage-audit/pkg/services/audit"
	"github.com/de-tools/storage-audit/pkg/services/azure"
	"github.com/de-tools/storage-audit/pkg/services/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScope struct {
	accounts []domain.StorageAccount
	usage    map[string]int64
}

func (f *fakeScope) ListStorageAccounts(context.Context) ([]domain.StorageAccount, error) {
	return f.accounts, nil
}

func (f *fakeScope) GetBlobCapacityBytes(_ context.Context, account domain.StorageAccount) (int64, error) {
	bytes, ok := f.usage[account.Name]
	if !ok {
		return 0, errors.New("metric unavailable")
	}
	return bytes, nil
}

type fakeProvider struct {
	subs   []domain.Subscription
	scopes map[string]*fakeScope
}

func (f *fakeProvider) ListSubscriptions(context.Context) ([]domain.Subscription, error) {
	return f.subs, nil
}

func (f *fakeProvider) UseSubscription(_ context.Context, id string) (audit.Scope, error) {
	s, ok := f.scopes[id]
	if !ok {
		return nil, fmt.Errorf("subscription %s not accessible", id)
	}
	return s, nil
}

func newProvider() *fakeProvider {
	return &fakeProvider{
		subs: []domain.Subscription{
			{ID: "s1", Name: "Sub1", Tags: domain.Tags{"quota": "10"}},
			{ID: "s2", Name: "Sub2"},
		},
		scopes: map[string]*fakeScope{
			"s1": {
				accounts: []domain.StorageAccount{{Name: "acct1"}, {Name: "acct2"}, {Name: "skipme"}},
				usage:    map[string]int64{"acct1": 12 << 30, "acct2": 5 << 30, "skipme": 100 << 30},
			},
			"s2": {
				accounts: []domain.StorageAccount{{Name: "other"}},
				usage:    map[string]int64{"other": 1 << 30},
			},
		},
	}
}

func execute(t *testing.T, connect func(context.Context, azure.ProfileConfig) (audit.Provider, error), args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cli := NewCLI(Options{Connect: connect, Output: &out, ErrOutput: &errOut})
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func connectTo(p audit.Provider) func(context.Context, azure.ProfileConfig) (audit.Provider, error) {
	return func(context.Context, azure.ProfileConfig) (audit.Provider, error) { return p, nil }
}

func TestCLI_Run(t *testing.T) {
	out, err := execute(t, connectTo(newProvider()), "run", "--tag-name", "quota", "--exclude", "skipme")

	require.NoError(t, err)
	assert.Contains(t, out, export.AllAccountsTitle)
	assert.Contains(t, out, export.ExceedingAccountsTitle)
	assert.Contains(t, out, "acct1")
	assert.Contains(t, out, "acct2")
	assert.NotContains(t, out, "skipme")
	assert.NotContains(t, out, "other", "untagged subscription is not audited")
}

func TestCLI_RunAllWithoutExceedance(t *testing.T) {
	out, err := execute(t, connectTo(newProvider()),
		"run", "--all", "--default-threshold", "1000", "--tag-name", "missing")

	require.NoError(t, err)
	assert.Contains(t, out, "other")
	assert.Contains(t, out, export.NoExceedanceNotice)
}

func TestCLI_RunSpecificOverridesAll(t *testing.T) {
	out, err := execute(t, connectTo(newProvider()), "run", "--all", "--subscription-id", "s2")

	require.NoError(t, err)
	assert.Contains(t, out, "other")
	assert.NotContains(t, out, "acct1")
}

func TestCLI_FatalConditions(t *testing.T) {
	t.Run("authentication failure", func(t *testing.T) {
		connect := func(context.Context, azure.ProfileConfig) (audit.Provider, error) {
			return nil, fmt.Errorf("%w: no credentials", audit.ErrAuthentication)
		}

		_, err := execute(t, connect, "run")

		assert.ErrorIs(t, err, audit.ErrAuthentication)
	})

	t.Run("no matching subscriptions", func(t *testing.T) {
		out, err := execute(t, connectTo(newProvider()), "run", "--tag-name", "absent")

		assert.ErrorIs(t, err, audit.ErrNoMatchingSubscriptions)
		assert.NotContains(t, out, export.AllAccountsTitle)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := execute(t, connectTo(newProvider()), "run", "--default-threshold=-5")

		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, err := execute(t, connectTo(newProvider()), "run", "--log-level", "loud")

		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}

func TestCLI_Subscriptions(t *testing.T) {
	out, err := execute(t, connectTo(newProvider()), "subscriptions", "--all", "--tag-name", "quota", "--default-threshold", "7")

	require.NoError(t, err)
	assert.Contains(t, out, "Sub1")
	assert.Contains(t, out, "Sub2")
	assert.Contains(t, out, "10")
	assert.Contains(t, out, "7")
}
