package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDarajaServer(t *testing.T, tokenCalls *int32, got *stkPushRequest, responseCode string) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":"3599"}`))
	})

	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stkPushResponse{
			MerchantRequestID:   "m-1",
			CheckoutRequestID:   "ws_CO_123",
			ResponseCode:        responseCode,
			ResponseDescription: "Success. Request accepted for processing",
			CustomerMessage:     "Success. Request accepted for processing",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestMpesa(baseURL string) *Mpesa {
	m := NewMpesa(MpesaConfig{
		BaseURL:        baseURL,
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		ShortCode:      "174379",
		Passkey:        "pass",
		CallbackURL:    "https://example.com/cb",
	}, zap.NewNop())
	m.http.SetRetryCount(0)
	m.now = func() time.Time { return time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC) }
	return m
}

func TestMpesa_Initiate(t *testing.T) {
	var calls int32
	var got stkPushRequest
	srv := newDarajaServer(t, &calls, &got, "0")
	m := newTestMpesa(srv.URL)

	h, err := m.Initiate(context.Background(), Request{
		PurchaseID:    "5f1c2d3e-aaaa-bbbb-cccc-1234567890ab",
		Description:   "Small Tattoo Package",
		Amount:        900050,
		CustomerPhone: "0712 345 678",
	})

	require.NoError(t, err)
	assert.Equal(t, "mpesa", h.Provider)
	assert.Equal(t, "ws_CO_123", h.Reference)

	assert.Equal(t, int64(9001), got.Amount)
	assert.Equal(t, "254712345678", got.PhoneNumber)
	assert.Equal(t, "254712345678", got.PartyA)
	assert.Equal(t, "174379", got.PartyB)
	assert.Equal(t, "20250303093000", got.Timestamp)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("174379pass20250303093000")), got.Password)
	assert.Equal(t, "5F1C2D3EAAAA", got.AccountReference)
	assert.Equal(t, "Small Tattoo ", got.TransactionDesc)
}

func TestMpesa_TokenIsCached(t *testing.T) {
	var calls int32
	var got stkPushRequest
	srv := newDarajaServer(t, &calls, &got, "0")
	m := newTestMpesa(srv.URL)

	for i := 0; i < 3; i++ {
		_, err := m.Initiate(context.Background(), Request{PurchaseID: "p", Amount: 100, CustomerPhone: "+254712345678"})
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestMpesa_RejectedPush(t *testing.T) {
	var calls int32
	var got stkPushRequest
	srv := newDarajaServer(t, &calls, &got, "1")
	m := newTestMpesa(srv.URL)

	_, err := m.Initiate(context.Background(), Request{PurchaseID: "p", Amount: 100, CustomerPhone: "0712345678"})

	assert.Error(t, err)
}

func TestMpesa_InvalidPhone(t *testing.T) {
	m := newTestMpesa("http://127.0.0.1:1")

	_, err := m.Initiate(context.Background(), Request{PurchaseID: "p", Amount: 100, CustomerPhone: "12"})

	assert.Error(t, err)
}

func TestNormalizeMsisdn(t *testing.T) {
	cases := map[string]string{
		"0712345678":    "254712345678",
		"+254712345678": "254712345678",
		"712345678":     "254712345678",
		"0110 123 456":  "254110123456",
	}
	for in, want := range cases {
		got, err := NormalizeMsisdn(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := NormalizeMsisdn("555-0100")
	assert.Error(t, err)
}
