package entity

import (
	"context"
	"time"
)

// LedgerTx é a visão transacional do razão: todas as escritas feitas por
// aqui acontecem na MESMA transação de banco que travou a linha do buyer.
// Ou tudo entra junto (saldo + lançamento + status do lead), ou nada entra.
type LedgerTx interface {
	// Persiste balance, free_leads_remaining e status do buyer.
	UpdateBuyer(ctx context.Context, buyer *Buyer) error

	// Insere um lançamento no razão (append-only).
	AppendTransaction(ctx context.Context, t *Transaction) error

	// pending -> delivered, junto com a cobrança.
	MarkLeadDelivered(ctx context.Context, buyerLeadID int64, at time.Time) error

	// Carrega o BuyerLead com lock de linha (estornos).
	LeadForUpdate(ctx context.Context, buyerLeadID int64) (*BuyerLead, error)

	// delivered -> returned, com motivo e timestamp.
	MarkLeadReturned(ctx context.Context, buyerLeadID int64, reason string, at time.Time) error

	// Localiza o lançamento original (charge ou free_lead) de um BuyerLead.
	FindChargeTransaction(ctx context.Context, buyerLeadID int64) (*Transaction, error)
}

// Ledger serializa as mutações de saldo por buyer: abre uma transação,
// trava a linha do buyer (SELECT ... FOR UPDATE) e entrega para fn o
// estado corrente. Se fn retornar erro, tudo é desfeito.
type Ledger interface {
	WithBuyerLock(ctx context.Context, buyerID int64, fn func(ctx context.Context, tx LedgerTx, buyer *Buyer) error) error
}
