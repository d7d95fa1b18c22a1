package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

// ListByBuyer devolve o razão do buyer na ordem de criação (id crescente).
// É a ordem que reconstrói o saldo: initial + sum(amount) == balance.
func (r *TransactionRepository) ListByBuyer(ctx context.Context, buyerID int64, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, buyer_id, type, amount, balance_after, description, reference_id, payment_ref, created_at
		FROM buyer_transactions
		WHERE buyer_id = $1
		ORDER BY id ASC
		LIMIT $2
	`

	rows, err := r.DB.QueryContext(ctx, query, buyerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.BuyerID,
			&t.Type,
			&t.Amount,
			&t.BalanceAfter,
			&t.Description,
			&t.ReferenceID,
			&t.PaymentRef,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		txs = append(txs, &t)
	}
	return txs, rows.Err()
}
