package payment

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// MpesaConfig holds the Daraja API credentials of the business shortcode.
type MpesaConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	CallbackURL    string
}

type mpesaToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
	ErrorMessage        string `json:"errorMessage"`
}

// Mpesa sends STK push prompts to the customer's phone through Daraja.
type Mpesa struct {
	cfg  MpesaConfig
	http *resty.Client
	log  *zap.Logger
	now  func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewMpesa(cfg MpesaConfig, log *zap.Logger) *Mpesa {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Accept", "application/json")

	return &Mpesa{
		cfg:  cfg,
		http: client,
		log:  log,
		now:  time.Now,
	}
}

func (m *Mpesa) Initiate(ctx context.Context, req Request) (*Handoff, error) {
	phone, err := NormalizeMsisdn(req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	token, err := m.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	ts := m.now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString([]byte(m.cfg.ShortCode + m.cfg.Passkey + ts))

	body := stkPushRequest{
		BusinessShortCode: m.cfg.ShortCode,
		Password:          password,
		Timestamp:         ts,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            WholeUnits(req.Amount),
		PartyA:            phone,
		PartyB:            m.cfg.ShortCode,
		PhoneNumber:       phone,
		CallBackURL:       m.cfg.CallbackURL,
		AccountReference:  accountReference(req.PurchaseID),
		TransactionDesc:   truncate(req.Description, 13),
	}

	var out stkPushResponse
	resp, err := m.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post("/mpesa/stkpush/v1/processrequest")
	if err != nil {
		m.log.Error("mpesa stk push failed", zap.String("purchase_id", req.PurchaseID), zap.Error(err))
		return nil, fmt.Errorf("mpesa stk push: %w", err)
	}

	if resp.IsError() || out.ResponseCode != "0" {
		msg := out.ResponseDescription
		if msg == "" {
			msg = out.ErrorMessage
		}
		m.log.Error("mpesa stk push rejected",
			zap.String("purchase_id", req.PurchaseID),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("description", msg),
		)
		return nil, fmt.Errorf("mpesa stk push rejected: %s", msg)
	}

	m.log.Info("mpesa stk push sent",
		zap.String("purchase_id", req.PurchaseID),
		zap.String("checkout_request_id", out.CheckoutRequestID),
	)

	return &Handoff{
		Provider:  "mpesa",
		Reference: out.CheckoutRequestID,
		Message:   out.CustomerMessage,
	}, nil
}

func (m *Mpesa) accessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && m.now().Before(m.expiresAt) {
		return m.token, nil
	}

	var tok mpesaToken
	resp, err := m.http.R().
		SetContext(ctx).
		SetBasicAuth(m.cfg.ConsumerKey, m.cfg.ConsumerSecret).
		SetQueryParam("grant_type", "client_credentials").
		SetResult(&tok).
		Get("/oauth/v1/generate")
	if err != nil {
		return "", fmt.Errorf("mpesa oauth: %w", err)
	}
	if resp.IsError() || tok.AccessToken == "" {
		return "", fmt.Errorf("mpesa oauth: status %d", resp.StatusCode())
	}

	ttl := 3599 * time.Second
	if secs, err := time.ParseDuration(tok.ExpiresIn + "s"); err == nil && secs > 0 {
		ttl = secs
	}

	m.token = tok.AccessToken
	// refresh a minute early
	m.expiresAt = m.now().Add(ttl - time.Minute)
	return m.token, nil
}

// NormalizeMsisdn turns local Kenyan formats (07.., 01.., +254..) into the
// 2547XXXXXXXX form Daraja expects.
func NormalizeMsisdn(phone string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	switch {
	case strings.HasPrefix(digits, "254") && len(digits) == 12:
		return digits, nil
	case strings.HasPrefix(digits, "0") && len(digits) == 10:
		return "254" + digits[1:], nil
	case len(digits) == 9 && (digits[0] == '7' || digits[0] == '1'):
		return "254" + digits, nil
	}
	return "", fmt.Errorf("invalid mpesa phone number %q", phone)
}

func accountReference(purchaseID string) string {
	ref := strings.ToUpper(strings.ReplaceAll(purchaseID, "-", ""))
	return truncate(ref, 12)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
