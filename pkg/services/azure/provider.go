package azure

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/monitor/armmonitor"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/de-tools/storage-audit/pkg/models/domain"
	"github.com/de-tools/storage-audit/pkg/services/audit"
)

const (
	blobCapacityMetric    = "BlobCapacity"
	blobServiceNamespace  = "Microsoft.Storage/storageAccounts/blobServices"
	blobServiceSuffix     = "/blobServices/default"
	blobCapacityInterval  = "PT1H"
	blobCapacityAggregate = "Average"
	blobCapacityLookback  = 24 * time.Hour
)

type provider struct {
	cred    azcore.TokenCredential
	options *arm.ClientOptions
	subs    *armsubscriptions.Client
	now     func() time.Time
}

// NewProvider returns an audit.Provider backed by Azure Resource Manager
func NewProvider(cred azcore.TokenCredential, options *arm.ClientOptions) (audit.Provider, error) {
	subs, err := armsubscriptions.NewClient(cred, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}
	return &provider{
		cred:    cred,
		options: options,
		subs:    subs,
		now:     time.Now,
	}, nil
}

func (p *provider) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	var subs []domain.Subscription

	pager := p.subs.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		for _, s := range page.Value {
			if s == nil {
				continue
			}
			subs = append(subs, toDomainSubscription(s))
		}
	}
	return subs, nil
}

func (p *provider) UseSubscription(_ context.Context, subscriptionID string) (audit.Scope, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("subscription id is empty")
	}

	accounts, err := armstorage.NewAccountsClient(subscriptionID, p.cred, p.options)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage accounts client: %w", err)
	}
	metrics, err := armmonitor.NewMetricsClient(subscriptionID, p.cred, p.options)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics client: %w", err)
	}

	return &scope{
		subscriptionID: subscriptionID,
		accounts:       accounts,
		metrics:        metrics,
		now:            p.now,
	}, nil
}

type scope struct {
	subscriptionID string
	accounts       *armstorage.AccountsClient
	metrics        *armmonitor.MetricsClient
	now            func() time.Time
}

func (s *scope) ListStorageAccounts(ctx context.Context) ([]domain.StorageAccount, error) {
	var accounts []domain.StorageAccount

	pager := s.accounts.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list storage accounts: %w", err)
		}
		for _, a := range page.Value {
			if a == nil {
				continue
			}
			accounts = append(accounts, toDomainAccount(a))
		}
	}
	return accounts, nil
}

func (s *scope) GetBlobCapacityBytes(ctx context.Context, account domain.StorageAccount) (int64, error) {
	if account.ID == "" {
		return 0, fmt.Errorf("storage account %s has no resource id", account.Name)
	}

	end := s.now().UTC()
	start := end.Add(-blobCapacityLookback)
	timespan := fmt.Sprintf("%s/%s", start.Format(time.RFC3339), end.Format(time.RFC3339))

	resp, err := s.metrics.List(ctx, account.ID+blobServiceSuffix, &armmonitor.MetricsClientListOptions{
		Metricnames:     to.Ptr(blobCapacityMetric),
		Metricnamespace: to.Ptr(blobServiceNamespace),
		Aggregation:     to.Ptr(blobCapacityAggregate),
		Interval:        to.Ptr(blobCapacityInterval),
		Timespan:        to.Ptr(timespan),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to query %s metric: %w", blobCapacityMetric, err)
	}

	return latestAverage(resp.Response)
}

// latestAverage returns the most recent non-empty average data point
func latestAverage(resp armmonitor.Response) (int64, error) {
	var (
		latest float64
		found  bool
	)
	for _, metric := range resp.Value {
		if metric == nil {
			continue
		}
		for _, ts := range metric.Timeseries {
			if ts == nil {
				continue
			}
			for _, point := range ts.Data {
				if point == nil || point.Average == nil {
					continue
				}
				latest = *point.Average
				found = true
			}
		}
	}
	if !found {
		return 0, fmt.Errorf("no %s data points returned", blobCapacityMetric)
	}
	return int64(latest), nil
}

func toDomainSubscription(s *armsubscriptions.Subscription) domain.Subscription {
	tags := make(domain.Tags, len(s.Tags))
	for k, v := range s.Tags {
		if v != nil {
			tags[k] = *v
		}
	}
	return domain.Subscription{
		ID:   deref(s.SubscriptionID),
		Name: deref(s.DisplayName),
		Tags: tags,
	}
}

func toDomainAccount(a *armstorage.Account) domain.StorageAccount {
	account := domain.StorageAccount{
		ID:       deref(a.ID),
		Name:     deref(a.Name),
		Location: deref(a.Location),
	}
	if rid, err := arm.ParseResourceID(account.ID); err == nil {
		account.ResourceGroup = rid.ResourceGroupName
	} else {
		account.ResourceGroup = resourceGroupFromID(account.ID)
	}
	return account
}

func resourceGroupFromID(id string) string {
	parts := strings.Split(id, "/")
	for i := 0; i+1 < len(parts); i++ {
		if strings.EqualFold(parts[i], "resourceGroups") {
			return parts[i+1]
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Connect authenticates and returns a provider; any authentication problem is
// reported as audit.ErrAuthentication.
func Connect(ctx context.Context, cfg ProfileConfig) (audit.Provider, error) {
	cred, err := Authenticate(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audit.ErrAuthentication, err)
	}
	return NewProvider(cred, nil)
}
