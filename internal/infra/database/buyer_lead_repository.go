package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

type BuyerLeadRepository struct {
	DB *sql.DB
}

func NewBuyerLeadRepository(db *sql.DB) *BuyerLeadRepository {
	return &BuyerLeadRepository{DB: db}
}

const buyerLeadColumns = `id, buyer_id, crm_lead_id, site_domain, lead_data_json, price, status, delivered_at, returned_at, return_reason, created_at`

func scanBuyerLead(row interface{ Scan(...any) error }) (*entity.BuyerLead, error) {
	var l entity.BuyerLead
	err := row.Scan(
		&l.ID,
		&l.BuyerID,
		&l.CRMLeadID,
		&l.SiteDomain,
		&l.LeadData,
		&l.Price,
		&l.Status,
		&l.DeliveredAt,
		&l.ReturnedAt,
		&l.ReturnReason,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create grava a atribuição em pending. A virada para delivered acontece
// na mesma transação da cobrança (ledger.go), nunca aqui.
func (r *BuyerLeadRepository) Create(ctx context.Context, l *entity.BuyerLead) error {
	query := `
		INSERT INTO buyer_leads (buyer_id, crm_lead_id, site_domain, lead_data_json, price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.DB.QueryRowContext(ctx, query,
		l.BuyerID,
		l.CRMLeadID,
		l.SiteDomain,
		l.LeadData,
		l.Price,
		l.Status,
		l.CreatedAt,
	).Scan(&l.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return entity.ErrLeadAlreadySold
			}
		}
		return err
	}
	return nil
}

func (r *BuyerLeadRepository) FindByID(ctx context.Context, id int64) (*entity.BuyerLead, error) {
	query := `SELECT ` + buyerLeadColumns + ` FROM buyer_leads WHERE id = $1`

	l, err := scanBuyerLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *BuyerLeadRepository) ListByBuyer(ctx context.Context, buyerID int64, limit int) ([]*entity.BuyerLead, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + buyerLeadColumns + ` FROM buyer_leads WHERE buyer_id = $1 ORDER BY id DESC LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, buyerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.BuyerLead
	for rows.Next() {
		l, err := scanBuyerLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}
