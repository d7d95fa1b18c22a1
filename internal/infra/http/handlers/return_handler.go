package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type ReturnHandler struct {
	UseCase *usecase.ReturnLeadUseCase
}

func NewReturnHandler(uc *usecase.ReturnLeadUseCase) *ReturnHandler {
	return &ReturnHandler{UseCase: uc}
}

type ReturnRequest struct {
	Reason string `json:"reason"`
}

type ReturnResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (h *ReturnHandler) Handle(w http.ResponseWriter, r *http.Request) {
	buyerLeadID, err := strconv.ParseInt(chi.URLParam(r, "buyerLeadId"), 10, 64)
	if err != nil {
		http.Error(w, "buyerLeadId inválido", http.StatusBadRequest)
		return
	}

	var req ReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Reason == "" {
		req.Reason = "not specified"
	}

	ok, err := h.UseCase.Execute(r.Context(), buyerLeadID, req.Reason)
	if err != nil {
		log.Printf("❌ Estorno do lead %d falhou: %v", buyerLeadID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		// Erro do usuário (lead não está em delivered), não pane
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(ReturnResponse{
			Success: false,
			Message: "lead is not in delivered status",
		})
		return
	}

	middleware.RecordRefund()

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ReturnResponse{Success: true})
}
