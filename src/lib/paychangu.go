package lib

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/tidwall/gjson"
)

const paychanguDefaultAPIURL = "https://api.paychangu.com"

// PayChanguClient talks to the PayChangu mobile-money API. The base URL is
// overridable through PAYCHANGU_API_URL so tests can point it at a stub.
type PayChanguClient struct {
	BaseURL   string
	SecretKey string

	httpClient *http.Client
}

var paychanguClient *PayChanguClient

func GetPayChanguClient() *PayChanguClient {
	if paychanguClient != nil {
		return paychanguClient
	}
	baseURL := os.Getenv("PAYCHANGU_API_URL")
	if baseURL == "" {
		baseURL = paychanguDefaultAPIURL
	}
	c := &PayChanguClient{
		BaseURL:   baseURL,
		SecretKey: os.Getenv("PAYCHANGU_SECRET_KEY"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	paychanguClient = c
	return c
}

func NewPayChanguClient(c *PayChanguClient) {
	paychanguClient = c
}

type MobileMoneyPaymentInput struct {
	Amount      uint              `json:"amount"`
	Currency    string            `json:"currency"`
	PhoneNumber string            `json:"phone_number"`
	Method      string            `json:"payment_method"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url"`
	Metadata    map[string]string `json:"metadata"`
}

type MobileMoneyPaymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Raw     any    `json:"raw,omitempty"`
}

// RequestMobileMoneyPayment asks the gateway to push a payment prompt to the
// registrant's phone. The outcome arrives later on the webhook; this call
// only starts the attempt.
func (c *PayChanguClient) RequestMobileMoneyPayment(ctx context.Context, input *MobileMoneyPaymentInput) (*MobileMoneyPaymentResponse, error) {
	if input.CallbackURL == "" {
		input.CallbackURL = os.Getenv("PAYCHANGU_CALLBACK_URL")
	}
	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/mobile-money/pay", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.SecretKey))
	req.Header.Set("Content-Type", "application/json")

	hc := c.httpClient
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		log.Printf("[PayChangu] request failed for reference [%s]: %s\n", input.Reference, err.Error())
		return nil, err
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= http.StatusBadRequest {
		msg := gjson.GetBytes(resBody, "message").String()
		err := fmt.Errorf("gateway returned %d: %s", res.StatusCode, msg)
		log.Printf("[PayChangu] error for reference [%s]: %s\n", input.Reference, err.Error())
		return nil, err
	}

	var raw any
	if err := json.Unmarshal(resBody, &raw); err != nil {
		return nil, err
	}
	payment := &MobileMoneyPaymentResponse{
		Status:  gjson.GetBytes(resBody, "status").String(),
		Message: gjson.GetBytes(resBody, "message").String(),
		Raw:     raw,
	}
	return payment, nil
}
