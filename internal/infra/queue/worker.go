package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
)

// Notifier é um canal concreto de entrega (email, sms, api, portal).
// O conjunto é fechado: um canal novo entra registrando mais um Notifier
// no mapa, sem encostar no código de cobrança.
type Notifier interface {
	Notify(ctx context.Context, payload LeadNotificationPayload) error
}

// Tempo máximo que um canal pode levar. Notificação nunca segura fila.
const notifyTimeout = 10 * time.Second

type Worker struct {
	Channel   *amqp.Channel
	Notifiers map[entity.DeliveryMethod]Notifier
}

func NewWorker(ch *amqp.Channel, notifiers map[entity.DeliveryMethod]Notifier) *Worker {
	return &Worker{
		Channel:   ch,
		Notifiers: notifiers,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadNotificationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Notificando buyer %d sobre o lead %d (%s)",
				payload.BuyerID, payload.BuyerLeadID, payload.DeliveryMethod)

			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			err := w.processMessage(ctx, payload)
			cancel()

			if err != nil {
				log.Printf("❌ [WORKER] Falha na notificação: %s", err)
				middleware.RecordNotificationError(string(payload.DeliveryMethod))
				// Sem requeue: vai para a DLQ e alguém olha depois.
				// A venda já está cobrada e não depende disso.
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload LeadNotificationPayload) error {
	notifier, ok := w.Notifiers[payload.DeliveryMethod]
	if !ok {
		// Método desconhecido: loga e dá ACK. Não sabemos tratar e
		// recolocar na fila não vai ajudar.
		log.Printf("⚠️ [WORKER] Método de entrega desconhecido: %s", payload.DeliveryMethod)
		return nil
	}

	return notifier.Notify(ctx, payload)
}
