package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type CampaignLister interface {
	ListByBuyer(ctx context.Context, buyerID int64) ([]*entity.Campaign, error)
}

type CampaignHandler struct {
	CreateUC *usecase.CreateCampaignUseCase
	Repo     CampaignLister
}

func NewCampaignHandler(createUC *usecase.CreateCampaignUseCase, repo CampaignLister) *CampaignHandler {
	return &CampaignHandler{
		CreateUC: createUC,
		Repo:     repo,
	}
}

func (h *CampaignHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := buyerIDParam(w, r)
	if !ok {
		return
	}

	var input usecase.CreateCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	input.BuyerID = buyerID

	campaign, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(campaign)
}

func (h *CampaignHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := buyerIDParam(w, r)
	if !ok {
		return
	}

	campaigns, err := h.Repo.ListByBuyer(r.Context(), buyerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaigns)
}
