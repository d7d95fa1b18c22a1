package usecase

import (
	"context"
	"log"
)

// ResetCountersUseCase zera os contadores de caps das campanhas. Quem
// chama é o scheduler externo: meia-noite UTC (diário) e segunda-feira
// (semanal).
type ResetCountersUseCase struct {
	CampaignRepo CampaignRepositoryInterface
}

func NewResetCountersUseCase(campaignRepo CampaignRepositoryInterface) *ResetCountersUseCase {
	return &ResetCountersUseCase{CampaignRepo: campaignRepo}
}

func (uc *ResetCountersUseCase) ResetDaily(ctx context.Context) (int64, error) {
	n, err := uc.CampaignRepo.ResetDaily(ctx)
	if err != nil {
		return 0, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	log.Printf("🕛 Reset diário: %d campanha(s) zeradas", n)
	return n, nil
}

func (uc *ResetCountersUseCase) ResetWeekly(ctx context.Context) (int64, error) {
	n, err := uc.CampaignRepo.ResetWeekly(ctx)
	if err != nil {
		return 0, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	log.Printf("📅 Reset semanal: %d campanha(s) zeradas", n)
	return n, nil
}
