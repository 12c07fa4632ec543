package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/storage-audit/pkg/models/api"
	"github.com/de-tools/storage-audit/pkg/models/domain"
	"github.com/de-tools/storage-audit/pkg/services/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuditor struct {
	mock.Mock
}

func (m *mockAuditor) Run(ctx context.Context) (*domain.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *mockAuditor) Select(ctx context.Context) ([]audit.Selection, []string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]audit.Selection), args.Get(1).([]string), args.Error(2)
}

func TestRunAudit(t *testing.T) {
	sub := domain.Subscription{ID: "s1", Name: "Sub1"}
	exceeding := domain.NewUsageRecord(sub, domain.StorageAccount{Name: "acct1"}, 12, 10)
	ok := domain.NewUsageRecord(sub, domain.StorageAccount{Name: "acct2"}, 5, 10)

	tests := []struct {
		name           string
		setupMock      func(*mockAuditor)
		expectedStatus int
	}{
		{
			name: "successful response",
			setupMock: func(m *mockAuditor) {
				m.On("Run", mock.Anything).Return(&domain.Report{
					All:       []domain.UsageRecord{exceeding, ok},
					Exceeding: []domain.UsageRecord{exceeding},
					Failures: []domain.Failure{{
						Scope: domain.FailureScopeAccount, Subscription: "Sub1", Account: "acct3", Err: errors.New("throttled"),
					}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "no matching subscriptions",
			setupMock: func(m *mockAuditor) {
				m.On("Run", mock.Anything).Return(nil, fmt.Errorf("%w (mode: tagged)", audit.ErrNoMatchingSubscriptions))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "subscription listing failure",
			setupMock: func(m *mockAuditor) {
				m.On("Run", mock.Anything).Return(nil, audit.ErrSubscriptionList)
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auditor := new(mockAuditor)
			tt.setupMock(auditor)

			req := httptest.NewRequest("GET", "/api/v1/audit", nil)
			rec := httptest.NewRecorder()

			NewHandler(auditor).RunAudit(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			auditor.AssertExpectations(t)

			if tt.expectedStatus != http.StatusOK {
				var body api.Error
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.NotEmpty(t, body.Error)
				return
			}

			var body api.AuditReport
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Len(t, body.All, 2)
			require.Len(t, body.Exceeding, 1)
			assert.Equal(t, "acct1", body.Exceeding[0].AccountName)
			assert.True(t, body.Exceeding[0].Exceeds)
			require.Len(t, body.Failures, 1)
			assert.Equal(t, "account", body.Failures[0].Scope)
			assert.Contains(t, body.Failures[0].Error, "throttled")
		})
	}
}

func TestListSubscriptions(t *testing.T) {
	auditor := new(mockAuditor)
	auditor.On("Select", mock.Anything).Return([]audit.Selection{
		{ID: "s1", Name: "Sub1", ThresholdGB: 20},
	}, []string{}, nil)

	req := httptest.NewRequest("GET", "/api/v1/subscriptions", nil)
	rec := httptest.NewRecorder()

	NewHandler(auditor).ListSubscriptions(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body []api.Subscription
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []api.Subscription{{ID: "s1", Name: "Sub1", ThresholdGB: 20}}, body)
}
