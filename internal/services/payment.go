package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/revalto/review-platform/internal/gateway/sslcommerz"
	"github.com/revalto/review-platform/internal/lib/sl"
	"github.com/revalto/review-platform/internal/lib/txid"
	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/query"
	"github.com/revalto/review-platform/internal/rabbitmq"
)

// Ответы реконсилиации. Шлюз ждет осмысленное сообщение и код 200
// на любой исход, иначе начинает ретраить и в итоге банит endpoint.
const (
	MsgPaymentInvalid    = "Invalid Payment!"
	MsgPaymentFailed     = "Payment Failed!"
	MsgPaymentSuccessful = "Payment successful!"
)

// PaymentFilterKeys — ключи фильтров админского списка оплат.
var PaymentFilterKeys = []string{"status", "userId", "reviewId"}

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment models.Payment) (*models.Payment, error)
	FindPaidPayment(ctx context.Context, userID, reviewID string) (*models.Payment, error)
	GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	MarkPaymentPaid(ctx context.Context, transactionID string, gatewayData []byte) (*models.Payment, error)
	ListPayments(ctx context.Context, filters map[string]string, opts query.Options) ([]*models.Payment, int, error)
	ListUserPayments(ctx context.Context, userID string) ([]*models.Payment, error)
}

type ReviewLookup interface {
	GetReview(ctx context.Context, id string) (*models.Review, error)
}

type PaymentGateway interface {
	InitSession(ctx context.Context, req sslcommerz.SessionRequest) (*sslcommerz.SessionResponse, error)
	ValidateTransaction(ctx context.Context, validationID string) (*sslcommerz.ValidationResponse, error)
}

type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// PaymentConfirmedEvent публикуется в RabbitMQ после подтверждения оплаты.
// Потребитель — сервис уведомлений (чеки на почту).
type PaymentConfirmedEvent struct {
	TransactionID string    `json:"transaction_id"`
	UserID        string    `json:"user_id"`
	ReviewID      string    `json:"review_id"`
	Amount        float64   `json:"amount"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}

// PaymentService реализует инициацию покупки премиального обзора
// и реконсилиацию асинхронных уведомлений шлюза.
type PaymentService struct {
	repo      PaymentRepository
	reviews   ReviewLookup
	users     UserRepository
	gateway   PaymentGateway
	publisher EventPublisher
	log       *slog.Logger
}

func NewPaymentService(repo PaymentRepository, reviews ReviewLookup, users UserRepository,
	gateway PaymentGateway, publisher EventPublisher, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:      repo,
		reviews:   reviews,
		users:     users,
		gateway:   gateway,
		publisher: publisher,
		log:       log,
	}
}

// InitPayment проверяет предусловия покупки, создает запись оплаты
// в статусе UNPAID и возвращает адрес платежной страницы шлюза.
// Запись остается в UNPAID, если поход в шлюз не удался: висящая
// неоплаченная строка допустима и ничего не ломает.
func (s *PaymentService) InitPayment(ctx context.Context, userID string, req models.DummyInitPayment) (string, error) {
	review, err := s.reviews.GetReview(ctx, req.ReviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if review.IsDeleted {
		return "", ErrNotFound
	}
	if !review.IsPremium {
		return "", ErrNotPremium
	}
	if review.PremiumPrice == nil {
		return "", ErrPriceNotSet
	}

	_, err = s.repo.FindPaidPayment(ctx, userID, req.ReviewID)
	if err == nil {
		return "", ErrAlreadyPurchased
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	profile, err := s.users.GetRegularUserByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrProfileIncomplete
		}
		return "", err
	}
	if profile.FullName == "" || profile.ContactNumber == "" {
		return "", ErrProfileIncomplete
	}

	payment := models.Payment{
		TransactionID: txid.New(time.Now()),
		Amount:        *review.PremiumPrice,
		Status:        models.PaymentStatusUnpaid,
		UserID:        userID,
		ReviewID:      req.ReviewID,
	}
	created, err := s.repo.CreatePayment(ctx, payment)
	if err != nil {
		return "", err
	}
	s.log.Info("created unpaid payment",
		slog.String("transaction_id", created.TransactionID),
		slog.String("review_id", created.ReviewID))

	session, err := s.gateway.InitSession(ctx, sslcommerz.SessionRequest{
		Amount:        created.Amount,
		TransactionID: created.TransactionID,
		CustomerName:  profile.FullName,
		CustomerEmail: user.Email,
		CustomerPhone: profile.ContactNumber,
		Address:       profile.Address,
		ReviewID:      created.ReviewID,
	})
	if err != nil {
		s.log.Error("gateway session failed",
			slog.String("transaction_id", created.TransactionID), sl.Err(err))
		return "", ErrPaymentGateway
	}
	return session.GatewayPageURL, nil
}

// ValidatePayment обрабатывает IPN-уведомление шлюза. Уведомлению
// не верим на слово: подтверждение делается встречным запросом
// к шлюзу, и только после него оплата переводится в PAID.
// Повторная доставка того же уведомления состояние не меняет.
func (s *PaymentService) ValidatePayment(ctx context.Context, payload models.IPNPayload) string {
	if payload.Status != sslcommerz.StatusValid {
		s.log.Warn("rejected ipn by status",
			slog.String("status", payload.Status),
			slog.String("transaction_id", payload.TransactionID))
		return MsgPaymentInvalid
	}

	validation, err := s.gateway.ValidateTransaction(ctx, payload.ValidationID)
	if err != nil {
		s.log.Error("gateway validation failed",
			slog.String("transaction_id", payload.TransactionID), sl.Err(err))
		return MsgPaymentFailed
	}
	if validation.Status != sslcommerz.StatusValid {
		s.log.Warn("gateway reported non-valid transaction",
			slog.String("status", validation.Status),
			slog.String("transaction_id", validation.TranID))
		return MsgPaymentFailed
	}

	gatewayData, err := json.Marshal(validation)
	if err != nil {
		s.log.Error("failed to marshal gateway confirmation", sl.Err(err))
		return MsgPaymentFailed
	}

	paid, err := s.repo.MarkPaymentPaid(ctx, validation.TranID, gatewayData)
	if err != nil {
		// Нет строк в UNPAID: либо повторная доставка IPN для уже
		// подтвержденной транзакции, либо неизвестный tran_id. Оба
		// случая безопасны, состояние не меняется.
		if errors.Is(err, sql.ErrNoRows) {
			s.log.Info("ipn for already reconciled transaction",
				slog.String("transaction_id", validation.TranID))
			return MsgPaymentSuccessful
		}
		s.log.Error("failed to mark payment paid",
			slog.String("transaction_id", validation.TranID), sl.Err(err))
		return MsgPaymentFailed
	}
	s.log.Info("payment confirmed",
		slog.String("transaction_id", paid.TransactionID),
		slog.String("review_id", paid.ReviewID))

	event := PaymentConfirmedEvent{
		TransactionID: paid.TransactionID,
		UserID:        paid.UserID,
		ReviewID:      paid.ReviewID,
		Amount:        paid.Amount,
		ConfirmedAt:   paid.UpdatedAt,
	}
	if err := s.publisher.Publish(rabbitmq.PaymentRoutingKey, event); err != nil {
		s.log.Warn("failed to publish payment event",
			slog.String("transaction_id", paid.TransactionID), sl.Err(err))
	}

	return MsgPaymentSuccessful
}

// List возвращает страницу оплат для администратора.
func (s *PaymentService) List(ctx context.Context, filters map[string]string, opts query.Options) ([]*models.Payment, int, error) {
	return s.repo.ListPayments(ctx, filters, opts)
}

// ListMine возвращает оплаты текущего пользователя.
func (s *PaymentService) ListMine(ctx context.Context, userID string) ([]*models.Payment, error) {
	return s.repo.ListUserPayments(ctx, userID)
}
