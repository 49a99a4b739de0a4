package blink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://api.blink.sv/graphql"

const defaultTimeout = 15 * time.Second

// PaymentStatus values reported by the provider for a Lightning invoice.
const (
	StatusPaid    = "PAID"
	StatusPending = "PENDING"
	StatusExpired = "EXPIRED"
)

// Options configures a Client.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Client talks to the Blink GraphQL API. Every call is a single attempt with
// no retry; callers decide what a failure means.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zerolog.Logger
}

// Wallet is the provider-hosted wallet returned by DefaultWallet.
type Wallet struct {
	ID       string
	Currency string
}

// Invoice is a freshly minted Lightning invoice.
type Invoice struct {
	PaymentRequest string
	PaymentHash    string
	Satoshis       int64
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("blink api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: baseURL,
		client:  client,
		logger:  opts.Logger,
	}, nil
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

const queryDefaultWallet = `
query Me {
  me {
    defaultAccount {
      defaultWalletId
      wallets {
        id
        walletCurrency
      }
    }
  }
}`

const mutationInvoiceCreate = `
mutation LnInvoiceCreate($input: LnInvoiceCreateInput!) {
  lnInvoiceCreate(input: $input) {
    invoice {
      paymentRequest
      paymentHash
      satoshis
    }
    errors {
      message
    }
  }
}`

const queryInvoiceStatus = `
query LnInvoicePaymentStatus($input: LnInvoicePaymentStatusInput!) {
  lnInvoicePaymentStatus(input: $input) {
    status
  }
}`

// DefaultWallet fetches the caller's default wallet from the provider.
func (c *Client) DefaultWallet(ctx context.Context) (*Wallet, error) {
	var out struct {
		Me struct {
			DefaultAccount struct {
				DefaultWalletID string `json:"defaultWalletId"`
				Wallets         []struct {
					ID             string `json:"id"`
					WalletCurrency string `json:"walletCurrency"`
				} `json:"wallets"`
			} `json:"defaultAccount"`
		} `json:"me"`
	}
	if err := c.do(ctx, "Me", graphqlRequest{Query: queryDefaultWallet}, &out); err != nil {
		return nil, err
	}
	id := out.Me.DefaultAccount.DefaultWalletID
	if id == "" {
		return nil, errors.New("blink: response missing default wallet id")
	}
	wallet := &Wallet{ID: id}
	for _, w := range out.Me.DefaultAccount.Wallets {
		if w.ID == id {
			wallet.Currency = w.WalletCurrency
			break
		}
	}
	return wallet, nil
}

// CreateInvoice mints a Lightning invoice for the given amount in satoshis.
func (c *Client) CreateInvoice(ctx context.Context, amountSats int64, memo string) (*Invoice, error) {
	if amountSats <= 0 {
		return nil, errors.New("blink: invoice amount must be positive")
	}
	req := graphqlRequest{
		Query: mutationInvoiceCreate,
		Variables: map[string]any{
			"input": map[string]any{
				"amount": amountSats,
				"memo":   memo,
			},
		},
	}
	var out struct {
		LnInvoiceCreate struct {
			Invoice struct {
				PaymentRequest string `json:"paymentRequest"`
				PaymentHash    string `json:"paymentHash"`
				Satoshis       int64  `json:"satoshis"`
			} `json:"invoice"`
			Errors []graphqlError `json:"errors"`
		} `json:"lnInvoiceCreate"`
	}
	if err := c.do(ctx, "LnInvoiceCreate", req, &out); err != nil {
		return nil, err
	}
	if len(out.LnInvoiceCreate.Errors) > 0 {
		return nil, fmt.Errorf("blink: %s", out.LnInvoiceCreate.Errors[0].Message)
	}
	inv := out.LnInvoiceCreate.Invoice
	if inv.PaymentRequest == "" {
		return nil, errors.New("blink: response missing payment request")
	}
	return &Invoice{
		PaymentRequest: inv.PaymentRequest,
		PaymentHash:    inv.PaymentHash,
		Satoshis:       inv.Satoshis,
	}, nil
}

// InvoiceStatus reports the settlement status of a payment request.
// One of PAID, PENDING or EXPIRED.
func (c *Client) InvoiceStatus(ctx context.Context, paymentRequest string) (string, error) {
	if strings.TrimSpace(paymentRequest) == "" {
		return "", errors.New("blink: payment request is required")
	}
	req := graphqlRequest{
		Query: queryInvoiceStatus,
		Variables: map[string]any{
			"input": map[string]any{
				"paymentRequest": paymentRequest,
			},
		},
	}
	var out struct {
		LnInvoicePaymentStatus struct {
			Status string `json:"status"`
		} `json:"lnInvoicePaymentStatus"`
	}
	if err := c.do(ctx, "LnInvoicePaymentStatus", req, &out); err != nil {
		return "", err
	}
	status := out.LnInvoicePaymentStatus.Status
	if status == "" {
		return "", errors.New("blink: response missing invoice status")
	}
	return status, nil
}

func (c *Client) do(ctx context.Context, op string, req graphqlRequest, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return fmt.Errorf("blink: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &buf)
	if err != nil {
		return fmt.Errorf("blink: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("blink: http request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("blink: status %d", resp.StatusCode)
	}
	var envelope graphqlEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("blink: decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("blink: %s", envelope.Errors[0].Message)
	}
	if c.logger != nil {
		c.logger.Debug().Str("op", op).Msg("blink call ok")
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("blink: decode data: %w", err)
	}
	return nil
}
