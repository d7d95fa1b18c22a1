package entity

import (
	"encoding/json"
	"time"
)

type LeadStatus string

const (
	// pending: linha criada mas cobrança ainda não confirmada. A entrega
	// só vira delivered dentro da mesma transação que grava a cobrança.
	LeadPending   LeadStatus = "pending"
	LeadDelivered LeadStatus = "delivered"
	LeadReturned  LeadStatus = "returned"
	LeadDisputed  LeadStatus = "disputed"
)

// Entidade: BuyerLead (uma venda de um lead para um buyer — a unidade de cobrança)
type BuyerLead struct {
	ID         int64  `json:"id"`
	BuyerID    int64  `json:"buyer_id"`
	CRMLeadID  int64  `json:"crm_lead_id"`
	SiteDomain string `json:"site_domain"`

	// Snapshot imutável do lead no momento da venda. Protege o registro
	// do buyer mesmo que o lead seja editado no CRM depois.
	LeadData json.RawMessage `json:"lead_data"`

	// Preço congelado na atribuição (centavos). Nunca recalculado.
	Price int64 `json:"price"`

	Status       LeadStatus `json:"status"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	ReturnedAt   *time.Time `json:"returned_at,omitempty"`
	ReturnReason *string    `json:"return_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
