package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

const campaignColumns = `id, buyer_id, name, site_domain, delivery_method, delivery_target, price_per_lead, max_per_day, max_per_week, leads_today, leads_this_week, last_lead_at, status, created_at, updated_at`

func scanCampaign(row interface{ Scan(...any) error }) (*entity.Campaign, error) {
	var c entity.Campaign
	err := row.Scan(
		&c.ID,
		&c.BuyerID,
		&c.Name,
		&c.SiteDomain,
		&c.DeliveryMethod,
		&c.DeliveryTarget,
		&c.PricePerLead,
		&c.MaxPerDay,
		&c.MaxPerWeek,
		&c.LeadsToday,
		&c.LeadsThisWeek,
		&c.LastLeadAt,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	query := `
		INSERT INTO buyer_campaigns (buyer_id, name, site_domain, delivery_method, delivery_target, price_per_lead, max_per_day, max_per_week, status, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var domain string
	if c.SiteDomain != nil {
		domain = *c.SiteDomain
	}

	err := r.DB.QueryRowContext(ctx, query,
		c.BuyerID,
		c.Name,
		domain,
		c.DeliveryMethod,
		c.DeliveryTarget,
		c.PricePerLead,
		c.MaxPerDay,
		c.MaxPerWeek,
		c.Status,
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.ID)

	if err != nil {
		return fmt.Errorf("falha ao criar campanha: %w", err)
	}
	return nil
}

// CountByBuyer diz quantas campanhas o buyer tem, em qualquer status.
// Zero campanhas = buyer aberto (aceita tudo).
func (r *CampaignRepository) CountByBuyer(ctx context.Context, buyerID int64) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM buyer_campaigns WHERE buyer_id = $1`, buyerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("falha ao contar campanhas: %w", err)
	}
	return count, nil
}

// FindMatching devolve a campanha ativa do buyer que aceita siteDomain.
// Desempate explícito: domínio exato ganha do catch-all (NULL/vazio) e,
// na mesma especificidade, o menor id ganha. Retorna nil quando nenhuma
// campanha casa.
func (r *CampaignRepository) FindMatching(ctx context.Context, buyerID int64, siteDomain string) (*entity.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + `
		FROM buyer_campaigns
		WHERE buyer_id = $1
		  AND status = 'active'
		  AND (site_domain IS NULL OR site_domain = '' OR site_domain = $2)
		ORDER BY (site_domain IS NOT NULL AND site_domain <> '') DESC, id ASC
		LIMIT 1
	`

	c, err := scanCampaign(r.DB.QueryRowContext(ctx, query, buyerID, siteDomain))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// IncrementCounters registra mais um lead entregue via campanha.
func (r *CampaignRepository) IncrementCounters(ctx context.Context, campaignID int64) error {
	query := `
		UPDATE buyer_campaigns
		SET leads_today = leads_today + 1,
		    leads_this_week = leads_this_week + 1,
		    last_lead_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, campaignID)
	if err != nil {
		return fmt.Errorf("falha ao incrementar contadores: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return entity.ErrCampaignNotFound
	}
	return nil
}

// ResetDaily zera leads_today de todas as campanhas (scheduler externo, meia-noite UTC).
func (r *CampaignRepository) ResetDaily(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE buyer_campaigns SET leads_today = 0, updated_at = NOW() WHERE leads_today <> 0`)
	if err != nil {
		return 0, fmt.Errorf("falha no reset diário: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// ResetWeekly zera leads_this_week (scheduler externo, segunda-feira).
func (r *CampaignRepository) ResetWeekly(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE buyer_campaigns SET leads_this_week = 0, updated_at = NOW() WHERE leads_this_week <> 0`)
	if err != nil {
		return 0, fmt.Errorf("falha no reset semanal: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

func (r *CampaignRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM buyer_campaigns WHERE buyer_id = $1 ORDER BY id ASC`

	rows, err := r.DB.QueryContext(ctx, query, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*entity.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}
