package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway is the outbound contract of the payment provider. The provider's
// protocol is consumed as a black box: a gateway error aborts the calling
// operation, no retries from this side.
type Gateway interface {
	Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*ConfirmResult, error)
	Cancel(ctx context.Context, paymentKey, reason string, amount int64) (*CancelResult, error)
}

type ConfirmResult struct {
	Method     string `json:"method"`
	ApprovedAt string `json:"approvedAt"`
}

type CancelResult struct {
	CanceledAt string `json:"canceledAt"`
}

type Client struct {
	baseURL   string
	secretKey string
	hc        *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		hc:        &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*ConfirmResult, error) {
	body := map[string]any{"paymentKey": paymentKey, "orderId": orderID, "amount": amount}
	var out ConfirmResult
	if err := c.post(ctx, "/v1/payments/confirm", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel refunds amount; amount<=0 means a full cancellation.
func (c *Client) Cancel(ctx context.Context, paymentKey, reason string, amount int64) (*CancelResult, error) {
	body := map[string]any{"cancelReason": reason}
	if amount > 0 {
		body["cancelAmount"] = amount
	}
	var out CancelResult
	if err := c.post(ctx, fmt.Sprintf("/v1/payments/%s/cancel", paymentKey), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	// Basic auth: username = secret key, password empty.
	req.SetBasicAuth(c.secretKey, "")

	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("payment gateway %s failed: %s (%d)", path, string(raw), res.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse gateway response: %w", err)
	}
	return nil
}
