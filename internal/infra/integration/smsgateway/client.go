package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

// Client fala com o gateway de SMS (provedor HTTP genérico).
type Client struct {
	apiKey  string
	sender  string
	baseURL string
}

func NewClient() *Client {
	baseURL := os.Getenv("SMS_API_URL")
	if baseURL == "" {
		baseURL = "https://api.smsgateway.example/v1"
	}
	return &Client{
		apiKey:  os.Getenv("SMS_API_KEY"),
		sender:  os.Getenv("SMS_SENDER"),
		baseURL: baseURL,
	}
}

// Notify implementa queue.Notifier para o canal sms.
func (c *Client) Notify(ctx context.Context, payload queue.LeadNotificationPayload) error {
	if payload.BuyerPhone == "" {
		log.Printf("⚠️ SMS: buyer %d não tem telefone cadastrado", payload.BuyerID)
		return nil
	}

	msg := fmt.Sprintf("Novo lead de %s! Lead #%d disponível no seu portal.",
		payload.SiteDomain, payload.BuyerLeadID)

	return c.Send(ctx, SendSMSInput{
		PhoneNumber: payload.BuyerPhone,
		Message:     msg,
	})
}

func (c *Client) Send(ctx context.Context, input SendSMSInput) error {
	if c.apiKey == "" {
		log.Println("⚠️ SMS: SMS_API_KEY não configurada")
		return fmt.Errorf("sms gateway não configurado")
	}

	body, err := json.Marshal(map[string]string{
		"to":      input.PhoneNumber,
		"from":    c.sender,
		"message": input.Message,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/messages", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("❌ SMS: Erro ao enviar mensagem: %v", err)
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("❌ SMS: API retornou status %d: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("sms api error: %d", resp.StatusCode)
	}

	var result SendSMSResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return err
	}
	if result.Error != nil {
		log.Printf("❌ SMS: Erro na API: %s (Code: %d)", result.Error.Message, result.Error.Code)
		return fmt.Errorf("sms: %s", result.Error.Message)
	}

	log.Printf("✅ SMS: Mensagem enviada para %s", input.PhoneNumber)
	return nil
}
