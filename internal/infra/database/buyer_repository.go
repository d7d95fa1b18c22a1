package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

type BuyerRepository struct {
	DB *sql.DB
}

func NewBuyerRepository(db *sql.DB) *BuyerRepository {
	return &BuyerRepository{DB: db}
}

const buyerColumns = `id, email, name, company, phone, balance, min_balance, price_per_lead, free_leads_remaining, status, created_at, updated_at`

func scanBuyer(row interface{ Scan(...any) error }) (*entity.Buyer, error) {
	var b entity.Buyer
	err := row.Scan(
		&b.ID,
		&b.Email,
		&b.Name,
		&b.Company,
		&b.Phone,
		&b.Balance,
		&b.MinBalance,
		&b.PricePerLead,
		&b.FreeLeadsRemaining,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BuyerRepository) Create(ctx context.Context, b *entity.Buyer) error {
	query := `
		INSERT INTO buyers (email, name, company, phone, balance, min_balance, price_per_lead, free_leads_remaining, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.DB.QueryRowContext(ctx, query,
		b.Email,
		b.Name,
		b.Company,
		b.Phone,
		b.Balance,
		b.MinBalance,
		b.PricePerLead,
		b.FreeLeadsRemaining,
		b.Status,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&b.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return entity.ErrEmailAlreadyExists
			}
		}

		log.Printf("Erro crítico no banco: %v", err)
		return err
	}

	return nil
}

func (r *BuyerRepository) FindByID(ctx context.Context, id int64) (*entity.Buyer, error) {
	query := `SELECT ` + buyerColumns + ` FROM buyers WHERE id = $1`

	b, err := scanBuyer(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrBuyerNotFound
		}
		return nil, err
	}
	return b, nil
}

// FindByEmail atende o tooling administrativo: email é a chave natural
// que o time de suporte tem em mãos.
func (r *BuyerRepository) FindByEmail(ctx context.Context, email string) (*entity.Buyer, error) {
	query := `SELECT ` + buyerColumns + ` FROM buyers WHERE email = $1`

	b, err := scanBuyer(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrBuyerNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListEligible retorna os buyers que passam no filtro de saldo, do mais
// rico para o mais pobre. Priorização simples e proposital: quem tem mais
// saldo compra primeiro. Leitura sem lock — quem decide de verdade se a
// cobrança acontece é o razão (ledger.go).
func (r *BuyerRepository) ListEligible(ctx context.Context) ([]*entity.Buyer, error) {
	query := `
		SELECT ` + buyerColumns + `
		FROM buyers
		WHERE status = 'active' AND balance >= min_balance
		ORDER BY balance DESC, id ASC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buyers []*entity.Buyer
	for rows.Next() {
		b, err := scanBuyer(rows)
		if err != nil {
			return nil, err
		}
		buyers = append(buyers, b)
	}
	return buyers, rows.Err()
}
