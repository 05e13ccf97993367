package sslcommerz

// StatusValid — сентинел успешной транзакции в ответах шлюза и в IPN.
const StatusValid = "VALID"

// SessionRequest — данные для создания платежной сессии.
type SessionRequest struct {
	Amount        float64
	TransactionID string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string
	ReviewID      string // прокидывается в value_a для обратной привязки
}

// SessionResponse — ответ шлюза на создание сессии.
// GatewayPageURL — адрес платежной страницы, на которую уходит покупатель.
type SessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

// ValidationResponse — ответ независимой проверки транзакции.
// Поля приходят от шлюза как есть; структура сериализуется обратно
// в JSON при сохранении подтверждения в платеже.
type ValidationResponse struct {
	Status        string `json:"status"`
	TranDate      string `json:"tran_date"`
	TranID        string `json:"tran_id"`
	ValID         string `json:"val_id"`
	Amount        string `json:"amount"`
	StoreAmount   string `json:"store_amount"`
	Currency      string `json:"currency"`
	BankTranID    string `json:"bank_tran_id"`
	CardType      string `json:"card_type"`
	CardNo        string `json:"card_no"`
	CardIssuer    string `json:"card_issuer"`
	CardBrand     string `json:"card_brand"`
	RiskLevel     string `json:"risk_level"`
	RiskTitle     string `json:"risk_title"`
	ValueA        string `json:"value_a"`
}
