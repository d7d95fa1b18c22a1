package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// DistributionHandler é a porta de entrada do intake de leads: o form
// handler (ou o pipeline de voz) chama aqui logo depois de criar o lead
// no CRM. A criação do lead no CRM nunca depende desta resposta.
type DistributionHandler struct {
	UseCase *usecase.DistributeLeadUseCase
}

func NewDistributionHandler(uc *usecase.DistributeLeadUseCase) *DistributionHandler {
	return &DistributionHandler{UseCase: uc}
}

type DistributeRequest struct {
	SiteDomain string            `json:"site_domain"`
	CRMLeadID  int64             `json:"crm_lead_id"`
	LeadData   map[string]string `json:"lead_data"`
}

type DistributeResponse struct {
	CRMLeadID int64                        `json:"crm_lead_id"`
	Results   []usecase.DistributionResult `json:"results"`
}

func (h *DistributionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req DistributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	if req.SiteDomain == "" || req.CRMLeadID == 0 {
		http.Error(w, "site_domain e crm_lead_id são obrigatórios", http.StatusBadRequest)
		return
	}

	results, err := h.UseCase.Execute(r.Context(), req.LeadData, req.SiteDomain, req.CRMLeadID)
	if err != nil {
		log.Printf("❌ Distribuição do lead %d falhou: %v", req.CRMLeadID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for _, res := range results {
		middleware.RecordDistribution(res.Status)
		if res.Status == usecase.DistributionDelivered {
			middleware.RecordCharge(res.FreeLead)
		}
		if res.Paused {
			middleware.RecordAutoPause()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(DistributeResponse{
		CRMLeadID: req.CRMLeadID,
		Results:   results,
	})
}
