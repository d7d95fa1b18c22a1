package usecase

import "github.com/xavierca1/ligue-leads/internal/entity"

// EligibleBuyer é um candidato aprovado pelo Matcher: o buyer, o preço
// efetivo e a campanha que casou (nil para buyer aberto).
type EligibleBuyer struct {
	Buyer    *entity.Buyer
	Price    int64
	Campaign *entity.Campaign
}

type ChargeInput struct {
	BuyerID     int64
	Price       int64
	BuyerLeadID int64
}

type ChargeOutput struct {
	FreeLead   bool  `json:"free_lead"`
	NewBalance int64 `json:"new_balance"`
	Paused     bool  `json:"paused"`
}

const (
	DistributionDelivered = "delivered"
	DistributionSkipped   = "skipped"
)

// DistributionResult é o resultado por buyer de uma distribuição. O
// chamador (dashboard admin) sempre recebe o array completo, mesmo com
// falhas parciais.
type DistributionResult struct {
	BuyerID     int64  `json:"buyer_id"`
	BuyerLeadID int64  `json:"buyer_lead_id,omitempty"`
	Status      string `json:"status"`
	Price       int64  `json:"price,omitempty"`
	FreeLead    bool   `json:"free_lead,omitempty"`
	Paused      bool   `json:"paused,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

type CreateBuyerInput struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Company      string `json:"company"`
	Phone        string `json:"phone"`
	PricePerLead int64  `json:"price_per_lead"`
	MinBalance   int64  `json:"min_balance"`
}

type CreateBuyerOutput struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	FreeLeadsRemaining int    `json:"free_leads_remaining"`
	Status             string `json:"status"`
}

type CreateCampaignInput struct {
	BuyerID        int64  `json:"buyer_id"`
	Name           string `json:"name"`
	SiteDomain     string `json:"site_domain"`
	DeliveryMethod string `json:"delivery_method"`
	DeliveryTarget string `json:"delivery_target"`
	PricePerLead   int64  `json:"price_per_lead"`
	MaxPerDay      int    `json:"max_per_day"`
	MaxPerWeek     int    `json:"max_per_week"`
}

type UpdateBalanceInput struct {
	BuyerID           int64  `json:"buyer_id"`
	Amount            int64  `json:"amount"`
	Type              string `json:"type"` // deposit | adjustment
	Description       string `json:"description"`
	ReferenceID       *int64 `json:"reference_id,omitempty"`
	ExternalPaymentID string `json:"external_payment_id,omitempty"`
}
