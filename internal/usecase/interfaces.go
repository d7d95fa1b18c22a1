package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

type BuyerRepositoryInterface interface {
	Create(ctx context.Context, b *entity.Buyer) error
	FindByID(ctx context.Context, id int64) (*entity.Buyer, error)
	FindByEmail(ctx context.Context, email string) (*entity.Buyer, error)
	ListEligible(ctx context.Context) ([]*entity.Buyer, error)
}

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Campaign) error
	CountByBuyer(ctx context.Context, buyerID int64) (int, error)
	FindMatching(ctx context.Context, buyerID int64, siteDomain string) (*entity.Campaign, error)
	IncrementCounters(ctx context.Context, campaignID int64) error
	ResetDaily(ctx context.Context) (int64, error)
	ResetWeekly(ctx context.Context) (int64, error)
}

type BuyerLeadRepositoryInterface interface {
	Create(ctx context.Context, l *entity.BuyerLead) error
	FindByID(ctx context.Context, id int64) (*entity.BuyerLead, error)
}

type QueueProducerInterface interface {
	PublishLeadNotification(ctx context.Context, payload queue.LeadNotificationPayload) error
}

// EligibilityFinder é o contrato do Matcher visto pelo orquestrador.
type EligibilityFinder interface {
	Execute(ctx context.Context, siteDomain string) ([]EligibleBuyer, error)
}

// BuyerCharger é o contrato do Billing Coordinator visto pelo orquestrador.
type BuyerCharger interface {
	Execute(ctx context.Context, input ChargeInput) (*ChargeOutput, error)
}
