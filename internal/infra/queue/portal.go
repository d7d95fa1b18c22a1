package queue

import (
	"context"
	"log"
)

// PortalNotifier cobre o canal portal: o lead já está no banco e o
// portal do buyer lê de lá, então não há transporte a fazer. Fica o log
// para auditoria da entrega.
type PortalNotifier struct{}

func NewPortalNotifier() *PortalNotifier {
	return &PortalNotifier{}
}

func (n *PortalNotifier) Notify(ctx context.Context, payload LeadNotificationPayload) error {
	log.Printf("🖥️ Portal: lead %d disponível para o buyer %d", payload.BuyerLeadID, payload.BuyerID)
	return nil
}
