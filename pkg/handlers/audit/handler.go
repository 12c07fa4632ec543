package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/storage-audit/pkg/models/api"
	"github.com/de-tools/storage-audit/pkg/models/domain"
	"github.com/de-tools/storage-audit/pkg/services/audit"
	"github.com/rs/zerolog"
)

// Auditor is the part of audit.Auditor the handler needs
type Auditor interface {
	Run(ctx context.Context) (*domain.Report, error)
	Select(ctx context.Context) ([]audit.Selection, []string, error)
}

type Handler struct {
	auditor Auditor
}

func NewHandler(auditor Auditor) *Handler {
	return &Handler{auditor: auditor}
}

func (h *Handler) RunAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	report, err := h.auditor.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("audit failed")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, api.NewAuditReport(report))
}

func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	selections, _, err := h.auditor.Select(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("subscription selection failed")
		writeError(w, r, err)
		return
	}

	response := make([]api.Subscription, 0, len(selections))
	for _, s := range selections {
		response = append(response, api.Subscription{ID: s.ID, Name: s.Name, ThresholdGB: s.ThresholdGB})
	}
	writeJSON(w, r, http.StatusOK, response)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, audit.ErrNoMatchingSubscriptions) {
		status = http.StatusNotFound
	}
	writeJSON(w, r, status, api.Error{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
