package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type CreateBuyerUseCase struct {
	Repo BuyerRepositoryInterface

	// Franquia de trial de um buyer novo (FREE_LEADS_DEFAULT, tipicamente 3)
	DefaultFreeLeads int
}

func NewCreateBuyerUseCase(repo BuyerRepositoryInterface, defaultFreeLeads int) *CreateBuyerUseCase {
	return &CreateBuyerUseCase{
		Repo:             repo,
		DefaultFreeLeads: defaultFreeLeads,
	}
}

func (uc *CreateBuyerUseCase) Execute(ctx context.Context, input CreateBuyerInput) (*CreateBuyerOutput, error) {
	validationErrors := ValidateCreateBuyerInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: joinValidationErrors(validationErrors),
		}
	}

	buyer, err := entity.NewBuyer(
		input.Email,
		input.Name,
		input.Company,
		input.Phone,
		input.PricePerLead,
		input.MinBalance,
		uc.DefaultFreeLeads,
	)
	if err != nil {
		return nil, &DomainError{
			Code:    "INVALID_BUYER",
			Message: err.Error(),
		}
	}

	if err := uc.Repo.Create(ctx, buyer); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{
				Code:    "EMAIL_EXISTS",
				Message: "a buyer with this email already exists",
			}
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist buyer: " + err.Error(),
		}
	}

	return &CreateBuyerOutput{
		ID:                 buyer.ID,
		Email:              buyer.Email,
		Name:               buyer.Name,
		FreeLeadsRemaining: buyer.FreeLeadsRemaining,
		Status:             string(buyer.Status),
	}, nil
}
