package entity

import (
	"errors"
	"time"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

type BuyerStatus string

const (
	BuyerActive    BuyerStatus = "active"
	BuyerPaused    BuyerStatus = "paused"    // automático: saldo abaixo do mínimo
	BuyerSuspended BuyerStatus = "suspended" // manual: decisão administrativa
)

// Entidade: Buyer (o contratante que compra leads no marketplace)
type Buyer struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`

	// Valores sempre em centavos. Balance pode ficar negativo
	// transitoriamente (cobrança que estourou o saldo).
	Balance      int64 `json:"balance"`
	MinBalance   int64 `json:"min_balance"`
	PricePerLead int64 `json:"price_per_lead"`

	FreeLeadsRemaining int `json:"free_leads_remaining"`

	Status    BuyerStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Factory
func NewBuyer(email, name, company, phone string, pricePerLead, minBalance int64, freeLeads int) (*Buyer, error) {
	buyer := &Buyer{
		Email:              email,
		Name:               name,
		Company:            company,
		Phone:              phone,
		Balance:            0,
		MinBalance:         minBalance,
		PricePerLead:       pricePerLead,
		FreeLeadsRemaining: freeLeads,
		Status:             BuyerActive,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if err := buyer.Validate(); err != nil {
		return nil, err
	}

	return buyer, nil
}

func (b *Buyer) Validate() error {
	if b.Email == "" {
		return errors.New("email is required")
	}
	if b.Name == "" {
		return errors.New("name is required")
	}
	if b.PricePerLead <= 0 {
		return errors.New("price_per_lead must be positive")
	}
	if b.MinBalance < 0 {
		return errors.New("min_balance must not be negative")
	}
	if b.FreeLeadsRemaining < 0 {
		return errors.New("free_leads_remaining must not be negative")
	}
	return nil
}

// Funded indica se o buyer pode receber leads pelo critério de saldo.
// A comparação é >= de propósito: quem está exatamente no mínimo ainda compra.
func (b *Buyer) Funded() bool {
	return b.Status == BuyerActive && b.Balance >= b.MinBalance
}
