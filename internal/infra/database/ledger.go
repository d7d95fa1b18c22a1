package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// Ledger implementa entity.Ledger: serializa as mutações de saldo de um
// buyer dentro de UMA transação de banco, com lock de linha. A escrita do
// saldo e o append do lançamento entram juntos ou não entram — é isso que
// mantém o invariante "soma dos amounts == saldo" à prova de crash e de
// concorrência.
type Ledger struct {
	DB *sql.DB
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{DB: db}
}

func (l *Ledger) WithBuyerLock(ctx context.Context, buyerID int64, fn func(ctx context.Context, tx entity.LedgerTx, buyer *entity.Buyer) error) error {
	dbTx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao abrir transação: %w", err)
	}
	// Rollback vira no-op depois do Commit
	defer dbTx.Rollback()

	query := `SELECT ` + buyerColumns + ` FROM buyers WHERE id = $1 FOR UPDATE`

	buyer, err := scanBuyer(dbTx.QueryRowContext(ctx, query, buyerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrBuyerNotFound
		}
		return fmt.Errorf("falha no lock do buyer %d: %w", buyerID, err)
	}

	if err := fn(ctx, &ledgerTx{tx: dbTx}, buyer); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("falha no commit do razão: %w", err)
	}
	return nil
}

// ledgerTx é o braço transacional entregue ao usecase.
type ledgerTx struct {
	tx *sql.Tx
}

func (t *ledgerTx) UpdateBuyer(ctx context.Context, b *entity.Buyer) error {
	query := `
		UPDATE buyers
		SET balance = $1, free_leads_remaining = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := t.tx.ExecContext(ctx, query, b.Balance, b.FreeLeadsRemaining, b.Status, b.ID)
	if err != nil {
		return fmt.Errorf("falha ao atualizar buyer %d: %w", b.ID, err)
	}
	return nil
}

func (t *ledgerTx) AppendTransaction(ctx context.Context, tr *entity.Transaction) error {
	query := `
		INSERT INTO buyer_transactions (buyer_id, type, amount, balance_after, description, reference_id, payment_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = time.Now()
	}
	err := t.tx.QueryRowContext(ctx, query,
		tr.BuyerID,
		tr.Type,
		tr.Amount,
		tr.BalanceAfter,
		tr.Description,
		tr.ReferenceID,
		tr.PaymentRef,
		tr.CreatedAt,
	).Scan(&tr.ID)
	if err != nil {
		return fmt.Errorf("falha ao lançar transação: %w", err)
	}
	return nil
}

func (t *ledgerTx) MarkLeadDelivered(ctx context.Context, buyerLeadID int64, at time.Time) error {
	query := `
		UPDATE buyer_leads
		SET status = 'delivered', delivered_at = $1
		WHERE id = $2 AND status = 'pending'
	`
	result, err := t.tx.ExecContext(ctx, query, at, buyerLeadID)
	if err != nil {
		return fmt.Errorf("falha ao entregar lead %d: %w", buyerLeadID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (t *ledgerTx) LeadForUpdate(ctx context.Context, buyerLeadID int64) (*entity.BuyerLead, error) {
	query := `SELECT ` + buyerLeadColumns + ` FROM buyer_leads WHERE id = $1 FOR UPDATE`

	l, err := scanBuyerLead(t.tx.QueryRowContext(ctx, query, buyerLeadID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return l, nil
}

func (t *ledgerTx) MarkLeadReturned(ctx context.Context, buyerLeadID int64, reason string, at time.Time) error {
	query := `
		UPDATE buyer_leads
		SET status = 'returned', returned_at = $1, return_reason = $2
		WHERE id = $3 AND status = 'delivered'
	`
	result, err := t.tx.ExecContext(ctx, query, at, reason, buyerLeadID)
	if err != nil {
		return fmt.Errorf("falha ao estornar lead %d: %w", buyerLeadID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return entity.ErrLeadNotReturnable
	}
	return nil
}

// FindChargeTransaction acha o lançamento que cobrou (ou consumiu free
// lead) um BuyerLead. O estorno precisa dele para decidir entre devolver
// dinheiro ou devolver crédito de trial.
func (t *ledgerTx) FindChargeTransaction(ctx context.Context, buyerLeadID int64) (*entity.Transaction, error) {
	query := `
		SELECT id, buyer_id, type, amount, balance_after, description, reference_id, payment_ref, created_at
		FROM buyer_transactions
		WHERE reference_id = $1 AND type IN ('charge', 'free_lead')
		ORDER BY id ASC
		LIMIT 1
	`
	var tr entity.Transaction
	err := t.tx.QueryRowContext(ctx, query, buyerLeadID).Scan(
		&tr.ID,
		&tr.BuyerID,
		&tr.Type,
		&tr.Amount,
		&tr.BalanceAfter,
		&tr.Description,
		&tr.ReferenceID,
		&tr.PaymentRef,
		&tr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return &tr, nil
}
