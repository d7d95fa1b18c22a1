package entity

import "time"

type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionCharge     TransactionType = "charge"
	TransactionRefund     TransactionType = "refund"
	TransactionFreeLead   TransactionType = "free_lead"
	TransactionAdjustment TransactionType = "adjustment"
)

// Entidade: Transaction (lançamento imutável do razão de cada buyer)
// Invariante central: somando Amount na ordem de criação reconstruímos
// exatamente o saldo atual do buyer.
type Transaction struct {
	ID      int64           `json:"id"`
	BuyerID int64           `json:"buyer_id"`
	Type    TransactionType `json:"type"`

	// Centavos com sinal: negativo para charge, positivo para
	// deposit/refund, zero para free_lead.
	Amount int64 `json:"amount"`

	// Snapshot do saldo após o lançamento. Nunca recomputado.
	BalanceAfter int64 `json:"balance_after"`

	Description string `json:"description,omitempty"`

	// BuyerLead que originou a cobrança/estorno, quando houver.
	ReferenceID *int64 `json:"reference_id,omitempty"`

	// Identificador do pagamento no processador externo (depósitos).
	PaymentRef *string `json:"payment_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
