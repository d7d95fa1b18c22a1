package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type TransactionLister interface {
	ListByBuyer(ctx context.Context, buyerID int64, limit int) ([]*entity.Transaction, error)
}

type BuyerLeadLister interface {
	ListByBuyer(ctx context.Context, buyerID int64, limit int) ([]*entity.BuyerLead, error)
}

// BuyerHandler atende o tooling administrativo: cadastro de buyers,
// consulta de razão e de entregas, suspensão manual.
type BuyerHandler struct {
	CreateUC  *usecase.CreateBuyerUseCase
	PauseUC   *usecase.PauseBuyerUseCase
	BuyerRepo usecase.BuyerRepositoryInterface
	TxRepo    TransactionLister
	LeadRepo  BuyerLeadLister
}

func NewBuyerHandler(
	createUC *usecase.CreateBuyerUseCase,
	pauseUC *usecase.PauseBuyerUseCase,
	buyerRepo usecase.BuyerRepositoryInterface,
	txRepo TransactionLister,
	leadRepo BuyerLeadLister,
) *BuyerHandler {
	return &BuyerHandler{
		CreateUC:  createUC,
		PauseUC:   pauseUC,
		BuyerRepo: buyerRepo,
		TxRepo:    txRepo,
		LeadRepo:  leadRepo,
	}
}

func (h *BuyerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateBuyerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	output, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(output)
}

func (h *BuyerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := buyerIDParam(w, r)
	if !ok {
		return
	}

	buyer, err := h.BuyerRepo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrBuyerNotFound) {
			http.Error(w, "buyer não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(buyer)
}

// HandleGetByEmail é a busca do suporte: quem liga sabe o próprio email,
// não o id interno.
func (h *BuyerHandler) HandleGetByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email é obrigatório", http.StatusBadRequest)
		return
	}

	buyer, err := h.BuyerRepo.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, entity.ErrBuyerNotFound) {
			http.Error(w, "buyer não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(buyer)
}

func (h *BuyerHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := buyerIDParam(w, r)
	if !ok {
		return
	}

	txs, err := h.TxRepo.ListByBuyer(r.Context(), id, queryLimit(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(txs)
}

func (h *BuyerHandler) HandleListLeads(w http.ResponseWriter, r *http.Request) {
	id, ok := buyerIDParam(w, r)
	if !ok {
		return
	}

	leads, err := h.LeadRepo.ListByBuyer(r.Context(), id, queryLimit(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leads)
}

// HandleUpdateStatus é o caminho manual: suspend, reactivate, pause.
func (h *BuyerHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := buyerIDParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Reason == "" {
		req.Reason = "administrative action"
	}

	if err := h.PauseUC.Execute(r.Context(), id, entity.BuyerStatus(req.Status), req.Reason); err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func buyerIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "buyerId"), 10, 64)
	if err != nil {
		http.Error(w, "buyerId inválido", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func queryLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

func writeUseCaseError(w http.ResponseWriter, err error) {
	if usecase.IsDomainError(err) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if errors.Is(err, entity.ErrBuyerNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
