package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func activeBuyer(id, balance, minBalance, pricePerLead int64, freeLeads int) *entity.Buyer {
	return &entity.Buyer{
		ID:                 id,
		Email:              "buyer@example.com",
		Name:               "Clínica Sorriso",
		Balance:            balance,
		MinBalance:         minBalance,
		PricePerLead:       pricePerLead,
		FreeLeadsRemaining: freeLeads,
		Status:             entity.BuyerActive,
		CreatedAt:          time.Now(),
	}
}

func pendingLead(id, buyerID, price int64) *entity.BuyerLead {
	return &entity.BuyerLead{
		ID:        id,
		BuyerID:   buyerID,
		CRMLeadID: 9000 + id,
		Price:     price,
		Status:    entity.LeadPending,
		CreatedAt: time.Now(),
	}
}

// Buyer com saldo de 100,00 e mínimo de 35,00 compra dois leads de 35,00:
// o primeiro deixa 65,00 (segue ativo), o segundo deixa 30,00 e dispara a
// pausa automática.
func TestChargeAutoPausesWhenBalanceDropsBelowMinimum(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(activeBuyer(1, 10000, 3500, 3500, 0))
	ledger.addLead(pendingLead(100, 1, 3500))
	ledger.addLead(pendingLead(101, 1, 3500))

	uc := usecase.NewChargeBuyerUseCase(ledger)

	out, err := uc.Execute(ctx, usecase.ChargeInput{BuyerID: 1, Price: 3500, BuyerLeadID: 100})
	assert.NoError(t, err)
	assert.False(t, out.FreeLead)
	assert.False(t, out.Paused)
	assert.Equal(t, int64(6500), out.NewBalance)
	assert.Equal(t, entity.BuyerActive, ledger.Buyer.Status)
	assert.Equal(t, entity.LeadDelivered, ledger.Leads[100].Status)

	out, err = uc.Execute(ctx, usecase.ChargeInput{BuyerID: 1, Price: 3500, BuyerLeadID: 101})
	assert.NoError(t, err)
	assert.True(t, out.Paused)
	assert.Equal(t, int64(3000), out.NewBalance)
	assert.Equal(t, entity.BuyerPaused, ledger.Buyer.Status)

	// Razão consistente: saldo inicial + soma dos lançamentos = saldo atual
	assert.Equal(t, ledger.Buyer.Balance, int64(10000)+ledger.ledgerSum())
	assert.Len(t, ledger.Txs, 2)
	assert.Equal(t, entity.TransactionCharge, ledger.Txs[1].Type)
	assert.Equal(t, int64(-3500), ledger.Txs[1].Amount)
	assert.Equal(t, int64(3000), ledger.Txs[1].BalanceAfter)
}

// Três free leads seguram três vendas sem mexer no saldo. A quarta venda
// cobra de verdade e, sem depósito, derruba o saldo abaixo do mínimo.
func TestChargeConsumesFreeTrialBeforeBalance(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(activeBuyer(2, 0, 1000, 3500, 3))
	for i := int64(0); i < 4; i++ {
		ledger.addLead(pendingLead(200+i, 2, 3500))
	}

	uc := usecase.NewChargeBuyerUseCase(ledger)

	for i := int64(0); i < 3; i++ {
		out, err := uc.Execute(ctx, usecase.ChargeInput{BuyerID: 2, Price: 3500, BuyerLeadID: 200 + i})
		assert.NoError(t, err)
		assert.True(t, out.FreeLead)
		assert.Equal(t, int64(0), out.NewBalance)
	}
	assert.Equal(t, 0, ledger.Buyer.FreeLeadsRemaining)
	assert.Equal(t, entity.BuyerActive, ledger.Buyer.Status)

	// Todos os lançamentos de trial valem zero no razão
	for _, tr := range ledger.Txs {
		assert.Equal(t, entity.TransactionFreeLead, tr.Type)
		assert.Equal(t, int64(0), tr.Amount)
	}

	out, err := uc.Execute(ctx, usecase.ChargeInput{BuyerID: 2, Price: 3500, BuyerLeadID: 203})
	assert.NoError(t, err)
	assert.False(t, out.FreeLead)
	assert.True(t, out.Paused)
	assert.Equal(t, int64(-3500), out.NewBalance)
	assert.Equal(t, entity.BuyerPaused, ledger.Buyer.Status)
}

// Free lead tem precedência mesmo com saldo de sobra.
func TestChargePrefersFreeLeadOverFundedBalance(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(activeBuyer(3, 50000, 1000, 3500, 1))
	ledger.addLead(pendingLead(300, 3, 3500))

	uc := usecase.NewChargeBuyerUseCase(ledger)

	out, err := uc.Execute(ctx, usecase.ChargeInput{BuyerID: 3, Price: 3500, BuyerLeadID: 300})
	assert.NoError(t, err)
	assert.True(t, out.FreeLead)
	assert.Equal(t, int64(50000), ledger.Buyer.Balance)
	assert.Equal(t, 0, ledger.Buyer.FreeLeadsRemaining)
}

// Saldo que cai EXATAMENTE no mínimo não pausa: o corte é < mínimo.
func TestChargeAtExactMinimumStaysActive(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger(activeBuyer(4, 7000, 3500, 3500, 0))
	ledger.addLead(pendingLead(400, 4, 3500))

	uc := usecase.NewChargeBuyerUseCase(ledger)

	out, err := uc.Execute(ctx, usecase.ChargeInput{BuyerID: 4, Price: 3500, BuyerLeadID: 400})
	assert.NoError(t, err)
	assert.False(t, out.Paused)
	assert.Equal(t, int64(3500), out.NewBalance)
	assert.Equal(t, entity.BuyerActive, ledger.Buyer.Status)
}

// Buyer suspenso não é cobrado, e nada muda: nem saldo, nem razão, nem o
// status do lead (fica em pending).
func TestChargeSuspendedBuyerRejectedWithoutSideEffects(t *testing.T) {
	ctx := context.Background()
	buyer := activeBuyer(5, 10000, 1000, 3500, 2)
	buyer.Status = entity.BuyerSuspended
	ledger := newFakeLedger(buyer)
	ledger.addLead(pendingLead(500, 5, 3500))

	uc := usecase.NewChargeBuyerUseCase(ledger)

	out, err := uc.Execute(ctx, usecase.ChargeInput{BuyerID: 5, Price: 3500, BuyerLeadID: 500})
	assert.Nil(t, out)
	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))

	assert.Equal(t, int64(10000), ledger.Buyer.Balance)
	assert.Equal(t, 2, ledger.Buyer.FreeLeadsRemaining)
	assert.Empty(t, ledger.Txs)
	assert.Equal(t, entity.LeadPending, ledger.Leads[500].Status)
}

func TestPauseBuyerRejectsUnknownStatus(t *testing.T) {
	ledger := newFakeLedger(activeBuyer(6, 1000, 0, 3500, 0))
	uc := usecase.NewPauseBuyerUseCase(ledger)

	err := uc.Execute(context.Background(), 6, entity.BuyerStatus("banned"), "teste")
	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
	assert.Equal(t, entity.BuyerActive, ledger.Buyer.Status)
}

func TestPauseBuyerSuspends(t *testing.T) {
	ledger := newFakeLedger(activeBuyer(7, 1000, 0, 3500, 0))
	uc := usecase.NewPauseBuyerUseCase(ledger)

	err := uc.Execute(context.Background(), 7, entity.BuyerSuspended, "chargeback")
	assert.NoError(t, err)
	assert.Equal(t, entity.BuyerSuspended, ledger.Buyer.Status)
}
