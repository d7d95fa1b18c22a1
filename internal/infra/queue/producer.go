package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// LeadNotificationPayload é o que o worker precisa para avisar o buyer
// que um lead foi vendido para ele. Carrega o snapshot inteiro: o worker
// não volta ao banco.
type LeadNotificationPayload struct {
	BuyerLeadID int64 `json:"buyer_lead_id"`
	BuyerID     int64 `json:"buyer_id"`
	CRMLeadID   int64 `json:"crm_lead_id"`

	BuyerName  string `json:"buyer_name"`
	BuyerEmail string `json:"buyer_email"`
	BuyerPhone string `json:"buyer_phone,omitempty"`

	DeliveryMethod entity.DeliveryMethod `json:"delivery_method"`
	DeliveryTarget string                `json:"delivery_target,omitempty"`

	SiteDomain string            `json:"site_domain"`
	LeadData   map[string]string `json:"lead_data"`
	Price      int64             `json:"price"`
	FreeLead   bool              `json:"free_lead"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishLeadNotification(ctx context.Context, payload LeadNotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    uuid.New().String(),
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco (segurança!)
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
