package usecase

import (
	"context"
	"fmt"
	"log"
)

// FindEligibleBuyersUseCase é o Campaign Eligibility Matcher: dado o
// domínio de origem de um lead, monta a lista ordenada de buyers que
// podem recebê-lo, com o preço efetivo de cada um.
//
// Caminho de leitura apenas, sem lock. Dados atrasados em milissegundos
// não importam aqui: quem garante a correção da cobrança é o razão.
type FindEligibleBuyersUseCase struct {
	BuyerRepo    BuyerRepositoryInterface
	CampaignRepo CampaignRepositoryInterface
}

func NewFindEligibleBuyersUseCase(
	buyerRepo BuyerRepositoryInterface,
	campaignRepo CampaignRepositoryInterface,
) *FindEligibleBuyersUseCase {
	return &FindEligibleBuyersUseCase{
		BuyerRepo:    buyerRepo,
		CampaignRepo: campaignRepo,
	}
}

func (uc *FindEligibleBuyersUseCase) Execute(ctx context.Context, siteDomain string) ([]EligibleBuyer, error) {
	// 1. Buyers ativos com saldo >= mínimo, do maior saldo para o menor
	buyers, err := uc.BuyerRepo.ListEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar buyers elegíveis: %w", err)
	}

	eligible := make([]EligibleBuyer, 0, len(buyers))

	for _, buyer := range buyers {
		// 2. Buyer sem nenhuma campanha = aberto, aceita tudo pelo preço padrão
		total, err := uc.CampaignRepo.CountByBuyer(ctx, buyer.ID)
		if err != nil {
			log.Printf("⚠️ Matcher: falha ao contar campanhas do buyer %d: %v", buyer.ID, err)
			continue
		}

		if total == 0 {
			eligible = append(eligible, EligibleBuyer{Buyer: buyer, Price: buyer.PricePerLead})
			continue
		}

		// 3. Com campanhas, só entra quem tem uma ativa casando com o domínio.
		// No máximo UMA campanha é considerada (desempate no repositório:
		// domínio exato > catch-all, depois menor id).
		campaign, err := uc.CampaignRepo.FindMatching(ctx, buyer.ID, siteDomain)
		if err != nil {
			log.Printf("⚠️ Matcher: falha ao buscar campanha do buyer %d: %v", buyer.ID, err)
			continue
		}
		if campaign == nil {
			continue
		}

		// 4. Caps diário/semanal (nil ou 0 = ilimitado)
		if !campaign.UnderCaps() {
			continue
		}

		eligible = append(eligible, EligibleBuyer{
			Buyer:    buyer,
			Price:    campaign.EffectivePrice(buyer.PricePerLead),
			Campaign: campaign,
		})
	}

	return eligible, nil
}
