package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type CreateCampaignUseCase struct {
	BuyerRepo    BuyerRepositoryInterface
	CampaignRepo CampaignRepositoryInterface
}

func NewCreateCampaignUseCase(buyerRepo BuyerRepositoryInterface, campaignRepo CampaignRepositoryInterface) *CreateCampaignUseCase {
	return &CreateCampaignUseCase{
		BuyerRepo:    buyerRepo,
		CampaignRepo: campaignRepo,
	}
}

func (uc *CreateCampaignUseCase) Execute(ctx context.Context, input CreateCampaignInput) (*entity.Campaign, error) {
	validationErrors := ValidateCreateCampaignInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: joinValidationErrors(validationErrors),
		}
	}

	// Campanha órfã não existe
	if _, err := uc.BuyerRepo.FindByID(ctx, input.BuyerID); err != nil {
		if errors.Is(err, entity.ErrBuyerNotFound) {
			return nil, &DomainError{Code: "BUYER_NOT_FOUND", Message: "buyer does not exist"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	campaign := &entity.Campaign{
		BuyerID:        input.BuyerID,
		Name:           input.Name,
		DeliveryMethod: entity.DeliveryMethod(input.DeliveryMethod),
		Status:         entity.CampaignActive,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if input.SiteDomain != "" {
		campaign.SiteDomain = &input.SiteDomain
	}
	if input.DeliveryTarget != "" {
		campaign.DeliveryTarget = &input.DeliveryTarget
	}
	if input.PricePerLead > 0 {
		campaign.PricePerLead = &input.PricePerLead
	}
	if input.MaxPerDay > 0 {
		campaign.MaxPerDay = &input.MaxPerDay
	}
	if input.MaxPerWeek > 0 {
		campaign.MaxPerWeek = &input.MaxPerWeek
	}

	if err := campaign.Validate(); err != nil {
		return nil, &DomainError{Code: "INVALID_CAMPAIGN", Message: err.Error()}
	}

	if err := uc.CampaignRepo.Create(ctx, campaign); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist campaign: " + err.Error(),
		}
	}

	return campaign, nil
}
