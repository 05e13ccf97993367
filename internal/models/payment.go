package models

import (
	"encoding/json"
	"time"
)

// Статусы платежа. Платеж создается в статусе UNPAID и переводится
// в PAID ровно один раз после подтверждения шлюза; обратного перехода нет.
const (
	PaymentStatusUnpaid = "UNPAID"
	PaymentStatusPaid   = "PAID"
)

// Payment представляет одну попытку покупки премиального обзора.
// TransactionID уникален на попытку; GatewayData хранит финальный
// подтверждающий ответ шлюза дословно, для аудита.
type Payment struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transactionId"`
	Amount        float64         `json:"amount"`
	Status        string          `json:"status"`
	UserID        string          `json:"userId"`
	ReviewID      string          `json:"reviewId"`
	GatewayData   json.RawMessage `json:"paymentGatewayData,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// DummyInitPayment используется для приёма запроса на инициацию платежа.
type DummyInitPayment struct {
	ReviewID string `json:"review_id" validate:"required,uuid"`
}

// IPNPayload — асинхронное уведомление платежного шлюза (IPN).
// Шлюз присылает form-encoded набор полей; здесь перечислены те,
// что участвуют в сверке. Аудиторским следом служит ответ
// валидационного API, который сохраняется при подтверждении дословно.
type IPNPayload struct {
	Status        string `json:"status"`
	TransactionID string `json:"tran_id"`
	ValidationID  string `json:"val_id"`
	Amount        string `json:"amount"`
}
