package mail

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// Notify implementa queue.Notifier para o canal email.
func (s *EmailSender) Notify(ctx context.Context, payload queue.LeadNotificationPayload) error {
	data := NewLeadEmailData{
		BuyerName:  payload.BuyerName,
		SiteDomain: payload.SiteDomain,
		Price:      formatCents(payload.Price),
		FreeLead:   payload.FreeLead,
		Fields:     payload.LeadData,
	}

	tmplPath := filepath.Join("templates", "new_lead.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", payload.BuyerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Novo lead de %s para você, %s! 🔔", payload.SiteDomain, payload.BuyerName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("R$ %d,%02d", cents/100, cents%100)
}
