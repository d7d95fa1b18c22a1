package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

// DistributeLeadUseCase é o orquestrador: recebe o lead recém-criado no
// CRM e vende para TODOS os buyers elegíveis (broadcast, não leilão).
// Falha de um buyer nunca aborta a distribuição para os demais.
type DistributeLeadUseCase struct {
	Matcher      EligibilityFinder
	Charger      BuyerCharger
	LeadRepo     BuyerLeadRepositoryInterface
	CampaignRepo CampaignRepositoryInterface
	Producer     QueueProducerInterface
}

func NewDistributeLeadUseCase(
	matcher EligibilityFinder,
	charger BuyerCharger,
	leadRepo BuyerLeadRepositoryInterface,
	campaignRepo CampaignRepositoryInterface,
	producer QueueProducerInterface,
) *DistributeLeadUseCase {
	return &DistributeLeadUseCase{
		Matcher:      matcher,
		Charger:      charger,
		LeadRepo:     leadRepo,
		CampaignRepo: campaignRepo,
		Producer:     producer,
	}
}

func (uc *DistributeLeadUseCase) Execute(ctx context.Context, leadData map[string]string, siteDomain string, crmLeadID int64) ([]DistributionResult, error) {
	candidates, err := uc.Matcher.Execute(ctx, siteDomain)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "MATCHER_ERROR",
			Message: "failed to compute eligible buyers: " + err.Error(),
		}
	}

	// Lista vazia não é erro: o lead só não foi monetizado.
	results := make([]DistributionResult, 0, len(candidates))
	if len(candidates) == 0 {
		log.Printf("📭 Nenhum buyer elegível para o lead %d (%s)", crmLeadID, siteDomain)
		return results, nil
	}

	// Snapshot congelado uma vez, compartilhado por todas as vendas
	snapshot, err := json.Marshal(leadData)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "SNAPSHOT_ERROR",
			Message: "failed to serialize lead data: " + err.Error(),
		}
	}

	for _, cand := range candidates {
		results = append(results, uc.sellTo(ctx, cand, snapshot, leadData, siteDomain, crmLeadID))
	}

	return results, nil
}

func (uc *DistributeLeadUseCase) sellTo(ctx context.Context, cand EligibleBuyer, snapshot []byte, leadData map[string]string, siteDomain string, crmLeadID int64) DistributionResult {
	buyer := cand.Buyer

	// 1. Atribuição em pending. O preço fica congelado aqui e nunca é
	// recalculado. A linha só vira delivered junto com a cobrança.
	lead := &entity.BuyerLead{
		BuyerID:    buyer.ID,
		CRMLeadID:  crmLeadID,
		SiteDomain: siteDomain,
		LeadData:   snapshot,
		Price:      cand.Price,
		Status:     entity.LeadPending,
		CreatedAt:  time.Now(),
	}

	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		reason := "assignment failed: " + err.Error()
		if errors.Is(err, entity.ErrLeadAlreadySold) {
			reason = "lead already sold to this buyer"
		}
		log.Printf("⚠️ Atribuição falhou para buyer %d: %v", buyer.ID, err)
		return DistributionResult{BuyerID: buyer.ID, Status: DistributionSkipped, Reason: reason}
	}

	// 2. Cobrança atômica (free lead ou débito + lançamento + delivered)
	charge, err := uc.Charger.Execute(ctx, ChargeInput{
		BuyerID:     buyer.ID,
		Price:       cand.Price,
		BuyerLeadID: lead.ID,
	})
	if err != nil {
		// A linha fica em pending: sem cobrança não existe entrega.
		log.Printf("❌ Cobrança falhou para buyer %d (lead %d): %v", buyer.ID, lead.ID, err)
		return DistributionResult{BuyerID: buyer.ID, Status: DistributionSkipped, Reason: "charge failed: " + err.Error()}
	}

	// 3. Contadores da campanha. Falha aqui não desfaz a venda: caps são
	// orientativos, o razão é a verdade.
	if cand.Campaign != nil {
		if err := uc.CampaignRepo.IncrementCounters(ctx, cand.Campaign.ID); err != nil {
			log.Printf("⚠️ Falha ao incrementar contadores da campanha %d: %v", cand.Campaign.ID, err)
		}
	}

	// 4. Notificação fire-and-forget
	uc.notify(cand, lead, leadData, siteDomain, crmLeadID, charge.FreeLead)

	return DistributionResult{
		BuyerID:     buyer.ID,
		BuyerLeadID: lead.ID,
		Status:      DistributionDelivered,
		Price:       cand.Price,
		FreeLead:    charge.FreeLead,
		Paused:      charge.Paused,
	}
}

func (uc *DistributeLeadUseCase) notify(cand EligibleBuyer, lead *entity.BuyerLead, leadData map[string]string, siteDomain string, crmLeadID int64, freeLead bool) {
	// Buyer aberto não tem campanha: avisa por email, que todo buyer tem.
	method := entity.DeliveryEmail
	target := ""
	if cand.Campaign != nil {
		method = cand.Campaign.DeliveryMethod
		if cand.Campaign.DeliveryTarget != nil {
			target = *cand.Campaign.DeliveryTarget
		}
	}

	payload := queue.LeadNotificationPayload{
		BuyerLeadID:    lead.ID,
		BuyerID:        cand.Buyer.ID,
		CRMLeadID:      crmLeadID,
		BuyerName:      cand.Buyer.Name,
		BuyerEmail:     cand.Buyer.Email,
		BuyerPhone:     cand.Buyer.Phone,
		DeliveryMethod: method,
		DeliveryTarget: target,
		SiteDomain:     siteDomain,
		LeadData:       leadData,
		Price:          lead.Price,
		FreeLead:       freeLead,
	}

	// Em goroutine própria, com timeout próprio: a publicação jamais
	// bloqueia ou derruba a venda que acabou de ser cobrada.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := uc.Producer.PublishLeadNotification(ctx, payload); err != nil {
			log.Printf("⚠️ Falha ao publicar notificação do lead %d: %v", lead.ID, err)
		}
	}()
}
