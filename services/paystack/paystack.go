package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrNotConfigured = errors.New("paystack keys are not configured")

// EventChargeSuccess is the only webhook event acted on; everything else is
// acknowledged and ignored.
const EventChargeSuccess = "charge.success"

// Client talks to the Paystack REST API
type Client struct {
	secretKey string
	http      *resty.Client
}

func NewClient(secretKey, baseURL string) *Client {
	return &Client{
		secretKey: secretKey,
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15 * time.Second).
			SetAuthToken(secretKey),
	}
}

// TransactionMetadata is echoed back by Paystack in webhooks and verify
// responses; it carries the enrollment key.
type TransactionMetadata struct {
	UserID      uint   `json:"user_id"`
	CourseID    uint   `json:"course_id"`
	CourseTitle string `json:"course_title,omitempty"`
}

// TransactionData is the payload of an initialize response
type TransactionData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type initializeResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    TransactionData `json:"data"`
}

// VerifyData is the payload of a transaction verify response
type VerifyData struct {
	Status    string              `json:"status"` // success, failed, abandoned
	Reference string              `json:"reference"`
	Amount    int64               `json:"amount"` // kobo
	Metadata  TransactionMetadata `json:"metadata"`
}

type verifyResponse struct {
	Status  bool       `json:"status"`
	Message string     `json:"message"`
	Data    VerifyData `json:"data"`
}

// WebhookEvent is the envelope POSTed by Paystack to the webhook endpoint
type WebhookEvent struct {
	Event string     `json:"event"`
	Data  VerifyData `json:"data"`
}

// InitializeTransaction starts a hosted checkout session. Amount is in kobo.
func (c *Client) InitializeTransaction(email string, amountKobo int64, reference, callbackURL string, metadata TransactionMetadata) (*TransactionData, error) {
	if c.secretKey == "" {
		return nil, ErrNotConfigured
	}

	var out initializeResponse
	resp, err := c.http.R().
		SetBody(map[string]interface{}{
			"email":        email,
			"amount":       amountKobo,
			"currency":     "NGN",
			"reference":    reference,
			"callback_url": callbackURL,
			"metadata":     metadata,
		}).
		SetResult(&out).
		Post("/transaction/initialize")
	if err != nil {
		return nil, fmt.Errorf("paystack initialize: %w", err)
	}
	if resp.StatusCode() != 200 || !out.Status {
		return nil, fmt.Errorf("paystack initialize failed: %s", resp.String())
	}
	return &out.Data, nil
}

// VerifyTransaction fetches the gateway-side state of a transaction.
func (c *Client) VerifyTransaction(reference string) (*VerifyData, error) {
	if c.secretKey == "" {
		return nil, ErrNotConfigured
	}

	var out verifyResponse
	resp, err := c.http.R().
		SetResult(&out).
		Get("/transaction/verify/" + reference)
	if err != nil {
		return nil, fmt.Errorf("paystack verify: %w", err)
	}
	if resp.StatusCode() != 200 || !out.Status {
		return nil, fmt.Errorf("paystack verify failed: %s", resp.String())
	}
	return &out.Data, nil
}

// VerifySignature checks the x-paystack-signature header against an
// HMAC-SHA512 of the raw request body. This runs before any JSON parsing;
// it is the only authentication on the webhook endpoint.
func VerifySignature(secretKey string, body []byte, signature string) bool {
	if secretKey == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
