package entity

import (
	"errors"
	"time"
)

type CampaignStatus string

const (
	CampaignActive CampaignStatus = "active"
	CampaignPaused CampaignStatus = "paused"
)

type DeliveryMethod string

const (
	DeliveryPortal DeliveryMethod = "portal"
	DeliveryEmail  DeliveryMethod = "email"
	DeliverySMS    DeliveryMethod = "sms"
	DeliveryAPI    DeliveryMethod = "api"
)

// Entidade: Campaign (filtro configurado pelo buyer: domínio + caps + preço)
type Campaign struct {
	ID      int64  `json:"id"`
	BuyerID int64  `json:"buyer_id"`
	Name    string `json:"name"`

	// nil/vazio = aceita leads de qualquer domínio
	SiteDomain *string `json:"site_domain,omitempty"`

	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	// URL de destino quando DeliveryMethod == api
	DeliveryTarget *string `json:"delivery_target,omitempty"`

	// Override do preço padrão do buyer (centavos). nil = usa o padrão.
	PricePerLead *int64 `json:"price_per_lead,omitempty"`

	// Caps: nil ou 0 = ilimitado no período
	MaxPerDay  *int `json:"max_per_day,omitempty"`
	MaxPerWeek *int `json:"max_per_week,omitempty"`

	LeadsToday    int        `json:"leads_today"`
	LeadsThisWeek int        `json:"leads_this_week"`
	LastLeadAt    *time.Time `json:"last_lead_at,omitempty"`

	Status    CampaignStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (c *Campaign) Validate() error {
	if c.BuyerID == 0 {
		return errors.New("buyer_id is required")
	}
	if c.Name == "" {
		return errors.New("name is required")
	}
	switch c.DeliveryMethod {
	case DeliveryPortal, DeliveryEmail, DeliverySMS, DeliveryAPI:
	default:
		return errors.New("delivery_method must be portal, email, sms or api")
	}
	if c.DeliveryMethod == DeliveryAPI && (c.DeliveryTarget == nil || *c.DeliveryTarget == "") {
		return errors.New("delivery_target is required for api delivery")
	}
	if c.PricePerLead != nil && *c.PricePerLead <= 0 {
		return errors.New("price_per_lead override must be positive")
	}
	return nil
}

// Matches verifica se a campanha aceita leads vindos de siteDomain.
func (c *Campaign) Matches(siteDomain string) bool {
	if c.SiteDomain == nil || *c.SiteDomain == "" {
		return true
	}
	return *c.SiteDomain == siteDomain
}

// UnderCaps verifica os limites diário e semanal.
func (c *Campaign) UnderCaps() bool {
	if c.MaxPerDay != nil && *c.MaxPerDay > 0 && c.LeadsToday >= *c.MaxPerDay {
		return false
	}
	if c.MaxPerWeek != nil && *c.MaxPerWeek > 0 && c.LeadsThisWeek >= *c.MaxPerWeek {
		return false
	}
	return true
}

// EffectivePrice resolve o preço: override da campanha ou padrão do buyer.
func (c *Campaign) EffectivePrice(buyerDefault int64) int64 {
	if c.PricePerLead != nil && *c.PricePerLead > 0 {
		return *c.PricePerLead
	}
	return buyerDefault
}
