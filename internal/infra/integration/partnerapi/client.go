package partnerapi

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

// Client entrega leads via POST na URL configurada pela campanha do
// buyer (delivery_method = api). O corpo vai assinado com HMAC para o
// endpoint do buyer validar a origem.
type Client struct {
	signingSecret string
	httpClient    *http.Client
}

func NewClient() *Client {
	return &Client{
		signingSecret: os.Getenv("PARTNER_API_SIGNING_SECRET"),
		httpClient:    &http.Client{Timeout: 8 * time.Second},
	}
}

type leadWebhookBody struct {
	BuyerLeadID int64             `json:"buyer_lead_id"`
	CRMLeadID   int64             `json:"crm_lead_id"`
	SiteDomain  string            `json:"site_domain"`
	Price       int64             `json:"price"`
	FreeLead    bool              `json:"free_lead"`
	Lead        map[string]string `json:"lead"`
}

// Notify implementa queue.Notifier para o canal api.
func (c *Client) Notify(ctx context.Context, payload queue.LeadNotificationPayload) error {
	if payload.DeliveryTarget == "" {
		log.Printf("⚠️ PartnerAPI: campanha sem delivery_target para o buyer %d", payload.BuyerID)
		return nil
	}

	body, err := json.Marshal(leadWebhookBody{
		BuyerLeadID: payload.BuyerLeadID,
		CRMLeadID:   payload.CRMLeadID,
		SiteDomain:  payload.SiteDomain,
		Price:       payload.Price,
		FreeLead:    payload.FreeLead,
		Lead:        payload.LeadData,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", payload.DeliveryTarget, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.signingSecret != "" {
		req.Header.Set("X-Lead-Signature", c.sign(body))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ PartnerAPI: falha no POST para %s: %v", payload.DeliveryTarget, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("❌ PartnerAPI: endpoint %s retornou %d", payload.DeliveryTarget, resp.StatusCode)
		return fmt.Errorf("partner endpoint error: %d", resp.StatusCode)
	}

	log.Printf("✅ PartnerAPI: lead %d entregue em %s", payload.BuyerLeadID, payload.DeliveryTarget)
	return nil
}

func (c *Client) sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(c.signingSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
