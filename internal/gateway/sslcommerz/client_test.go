package sslcommerz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revalto/review-platform/internal/config"
)

func testGatewayConfig(paymentAPI, validationAPI string) config.Gateway {
	return config.Gateway{
		StoreID:       "teststore",
		StorePassword: "testpass",
		PaymentAPI:    paymentAPI,
		ValidationAPI: validationAPI,
		SuccessURL:    "https://revalto.example/payment/success",
		FailURL:       "https://revalto.example/payment/fail",
		CancelURL:     "https://revalto.example/payment/cancel",
		IPNURL:        "https://revalto.example/api/v1/payments/ipn",
		Timeout:       5 * time.Second,
	}
}

func TestInitSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "teststore", r.PostForm.Get("store_id"))
		assert.Equal(t, "500.00", r.PostForm.Get("total_amount"))
		assert.Equal(t, "REVALTO-2026-8-29-1-2-3-42", r.PostForm.Get("tran_id"))
		assert.Equal(t, "BDT", r.PostForm.Get("currency"))
		assert.Equal(t, "review-1", r.PostForm.Get("value_a"))
		assert.Equal(t, "N/A", r.PostForm.Get("cus_phone"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"SUCCESS","sessionkey":"abc","GatewayPageURL":"https://pay.example/session/abc"}`))
	}))
	defer srv.Close()

	client := NewClient(testGatewayConfig(srv.URL, srv.URL))
	resp, err := client.InitSession(context.Background(), SessionRequest{
		Amount:        500,
		TransactionID: "REVALTO-2026-8-29-1-2-3-42",
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		ReviewID:      "review-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/session/abc", resp.GatewayPageURL)
}

func TestInitSession_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"FAILED","failedreason":"store credentials invalid"}`))
	}))
	defer srv.Close()

	client := NewClient(testGatewayConfig(srv.URL, srv.URL))
	_, err := client.InitSession(context.Background(), SessionRequest{
		Amount:        500,
		TransactionID: "tx",
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
	})
	assert.ErrorContains(t, err, "store credentials invalid")
}

func TestInitSession_MissingConfig(t *testing.T) {
	client := NewClient(config.Gateway{Timeout: time.Second})
	_, err := client.InitSession(context.Background(), SessionRequest{})
	assert.ErrorContains(t, err, "configuration is missing")
}

func TestValidateTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "val-1", r.URL.Query().Get("val_id"))
		assert.Equal(t, "teststore", r.URL.Query().Get("store_id"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		_, _ = w.Write([]byte(`{"status":"VALID","tran_id":"REVALTO-2026-8-29-1-2-3-42","val_id":"val-1","amount":"500.00"}`))
	}))
	defer srv.Close()

	client := NewClient(testGatewayConfig(srv.URL, srv.URL))
	resp, err := client.ValidateTransaction(context.Background(), "val-1")
	require.NoError(t, err)
	assert.Equal(t, StatusValid, resp.Status)
	assert.Equal(t, "REVALTO-2026-8-29-1-2-3-42", resp.TranID)
}

func TestValidateTransaction_GatewayDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testGatewayConfig(srv.URL, srv.URL))
	_, err := client.ValidateTransaction(context.Background(), "val-1")
	assert.Error(t, err)
}
