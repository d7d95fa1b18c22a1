package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// CountersHandler expõe os resets de caps para o scheduler externo
// (cron: diário à meia-noite UTC, semanal na segunda-feira).
type CountersHandler struct {
	UseCase *usecase.ResetCountersUseCase
}

func NewCountersHandler(uc *usecase.ResetCountersUseCase) *CountersHandler {
	return &CountersHandler{UseCase: uc}
}

type resetResponse struct {
	CampaignsReset int64 `json:"campaigns_reset"`
}

func (h *CountersHandler) HandleResetDaily(w http.ResponseWriter, r *http.Request) {
	n, err := h.UseCase.ResetDaily(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resetResponse{CampaignsReset: n})
}

func (h *CountersHandler) HandleResetWeekly(w http.ResponseWriter, r *http.Request) {
	n, err := h.UseCase.ResetWeekly(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resetResponse{CampaignsReset: n})
}
