// Package sslcommerz реализует клиент платежного шлюза SSLCommerz:
// создание платежной сессии и независимую проверку транзакции.
//
// Оба вызова сетевые, с ограниченным таймаутом и без автоматических
// повторов: истекший или неудавшийся запрос поднимается ошибкой к
// вызывающему слою.
package sslcommerz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/revalto/review-platform/internal/config"
)

// Client клиент SSLCommerz. Создается один раз при старте приложения.
type Client struct {
	cfg        config.Gateway
	httpClient *http.Client
}

// NewClient создает клиент по настройкам шлюза из конфига.
func NewClient(cfg config.Gateway) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// checkConfig проверяет, что обязательные настройки шлюза заданы.
func (c *Client) checkConfig() error {
	if c.cfg.StoreID == "" || c.cfg.StorePassword == "" ||
		c.cfg.PaymentAPI == "" || c.cfg.ValidationAPI == "" ||
		c.cfg.SuccessURL == "" || c.cfg.FailURL == "" || c.cfg.CancelURL == "" {
		return fmt.Errorf("gateway configuration is missing")
	}
	return nil
}

// InitSession создает платежную сессию и возвращает адрес платежной страницы.
func (c *Client) InitSession(ctx context.Context, reqParams SessionRequest) (*SessionResponse, error) {
	const op = "sslcommerz.InitSession"

	if err := c.checkConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	form := url.Values{}
	form.Set("store_id", c.cfg.StoreID)
	form.Set("store_passwd", c.cfg.StorePassword)
	form.Set("total_amount", fmt.Sprintf("%.2f", reqParams.Amount))
	form.Set("currency", "BDT")
	form.Set("tran_id", reqParams.TransactionID)
	form.Set("success_url", c.cfg.SuccessURL)
	form.Set("fail_url", c.cfg.FailURL)
	form.Set("cancel_url", c.cfg.CancelURL)
	form.Set("ipn_url", c.cfg.IPNURL)
	form.Set("shipping_method", "N/A")
	form.Set("product_name", "Premium Review")
	form.Set("product_category", "Digital Content")
	form.Set("product_profile", "general")
	form.Set("cus_name", reqParams.CustomerName)
	form.Set("cus_email", reqParams.CustomerEmail)
	form.Set("cus_add1", orNA(reqParams.Address))
	form.Set("cus_city", "N/A")
	form.Set("cus_country", "Bangladesh")
	form.Set("cus_phone", orNA(reqParams.CustomerPhone))
	form.Set("value_a", reqParams.ReviewID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.PaymentAPI,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var sessionResp SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sessionResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sessionResp.GatewayPageURL == "" {
		return nil, fmt.Errorf("%s: session rejected: %s", op, sessionResp.FailedReason)
	}
	return &sessionResp, nil
}

// ValidateTransaction дергает независимую проверку транзакции по val_id
// из IPN-уведомления. Ответ шлюза — а не содержимое уведомления —
// считается источником истины о статусе платежа.
func (c *Client) ValidateTransaction(ctx context.Context, validationID string) (*ValidationResponse, error) {
	const op = "sslcommerz.ValidateTransaction"

	if c.cfg.ValidationAPI == "" || c.cfg.StoreID == "" || c.cfg.StorePassword == "" {
		return nil, fmt.Errorf("%s: gateway configuration is missing", op)
	}

	q := url.Values{}
	q.Set("val_id", validationID)
	q.Set("store_id", c.cfg.StoreID)
	q.Set("store_passwd", c.cfg.StorePassword)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.ValidationAPI+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var validationResp ValidationResponse
	if err := json.NewDecoder(resp.Body).Decode(&validationResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &validationResp, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
