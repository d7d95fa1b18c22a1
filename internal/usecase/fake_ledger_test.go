package usecase_test

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// fakeLedger mantém o estado de UM buyer em memória, respeitando o
// contrato do razão real: se fn retorna erro, nenhuma escrita fica.
type fakeLedger struct {
	Buyer *entity.Buyer
	Leads map[int64]*entity.BuyerLead
	Txs   []*entity.Transaction

	nextTxID int64
}

func newFakeLedger(buyer *entity.Buyer) *fakeLedger {
	return &fakeLedger{
		Buyer:    buyer,
		Leads:    make(map[int64]*entity.BuyerLead),
		nextTxID: 1,
	}
}

func (l *fakeLedger) addLead(lead *entity.BuyerLead) {
	l.Leads[lead.ID] = lead
}

func (l *fakeLedger) WithBuyerLock(ctx context.Context, buyerID int64, fn func(ctx context.Context, tx entity.LedgerTx, buyer *entity.Buyer) error) error {
	if l.Buyer == nil || l.Buyer.ID != buyerID {
		return entity.ErrBuyerNotFound
	}

	// Snapshot para simular o rollback
	buyerBackup := *l.Buyer
	leadsBackup := make(map[int64]*entity.BuyerLead, len(l.Leads))
	for id, lead := range l.Leads {
		cp := *lead
		leadsBackup[id] = &cp
	}
	txsBackup := append([]*entity.Transaction(nil), l.Txs...)

	if err := fn(ctx, &fakeLedgerTx{l}, l.Buyer); err != nil {
		*l.Buyer = buyerBackup
		l.Leads = leadsBackup
		l.Txs = txsBackup
		return err
	}
	return nil
}

type fakeLedgerTx struct {
	l *fakeLedger
}

func (t *fakeLedgerTx) UpdateBuyer(ctx context.Context, buyer *entity.Buyer) error {
	*t.l.Buyer = *buyer
	return nil
}

func (t *fakeLedgerTx) AppendTransaction(ctx context.Context, tr *entity.Transaction) error {
	tr.ID = t.l.nextTxID
	t.l.nextTxID++
	cp := *tr
	t.l.Txs = append(t.l.Txs, &cp)
	return nil
}

func (t *fakeLedgerTx) MarkLeadDelivered(ctx context.Context, buyerLeadID int64, at time.Time) error {
	lead, ok := t.l.Leads[buyerLeadID]
	if !ok || lead.Status != entity.LeadPending {
		return entity.ErrLeadNotFound
	}
	lead.Status = entity.LeadDelivered
	lead.DeliveredAt = &at
	return nil
}

func (t *fakeLedgerTx) LeadForUpdate(ctx context.Context, buyerLeadID int64) (*entity.BuyerLead, error) {
	lead, ok := t.l.Leads[buyerLeadID]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	cp := *lead
	return &cp, nil
}

func (t *fakeLedgerTx) MarkLeadReturned(ctx context.Context, buyerLeadID int64, reason string, at time.Time) error {
	lead, ok := t.l.Leads[buyerLeadID]
	if !ok || lead.Status != entity.LeadDelivered {
		return entity.ErrLeadNotReturnable
	}
	lead.Status = entity.LeadReturned
	lead.ReturnedAt = &at
	lead.ReturnReason = &reason
	return nil
}

func (t *fakeLedgerTx) FindChargeTransaction(ctx context.Context, buyerLeadID int64) (*entity.Transaction, error) {
	for _, tr := range t.l.Txs {
		if tr.ReferenceID == nil || *tr.ReferenceID != buyerLeadID {
			continue
		}
		if tr.Type == entity.TransactionCharge || tr.Type == entity.TransactionFreeLead {
			cp := *tr
			return &cp, nil
		}
	}
	return nil, entity.ErrLeadNotFound
}

// ledgerSum soma os lançamentos na ordem de criação. Partindo do saldo
// inicial do buyer, o resultado precisa bater com o saldo corrente.
func (l *fakeLedger) ledgerSum() int64 {
	var sum int64
	for _, tr := range l.Txs {
		sum += tr.Amount
	}
	return sum
}
