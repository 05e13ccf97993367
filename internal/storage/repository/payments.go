package repository

import (
	"context"
	"fmt"

	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/query"
)

var paymentFilterColumns = map[string]string{
	"status":   "status",
	"userId":   "user_id",
	"reviewId": "review_id",
}

const paymentColumns = `id, transaction_id, amount, status, user_id, review_id,
	 gateway_data, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var p models.Payment
	var gatewayData []byte

	err := row.Scan(&p.ID, &p.TransactionID, &p.Amount, &p.Status, &p.UserID, &p.ReviewID,
		&gatewayData, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.GatewayData = gatewayData
	return &p, nil
}

// CreatePayment вставляет новую запись оплаты в статусе UNPAID.
// Уникальность transaction_id обеспечивает схема.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	const op = "storage.CreatePayment"

	created := payment
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO payments (transaction_id, amount, status, user_id, review_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		payment.TransactionID, payment.Amount, payment.Status, payment.UserID, payment.ReviewID).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// FindPaidPayment ищет подтвержденную оплату пользователя за обзор.
// Возвращает sql.ErrNoRows, если оплаты нет.
func (s *Storage) FindPaidPayment(ctx context.Context, userID, reviewID string) (*models.Payment, error) {
	const op = "storage.FindPaidPayment"

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+paymentColumns+`
		 FROM payments
		 WHERE user_id = $1 AND review_id = $2 AND status = $3`,
		userID, reviewID, models.PaymentStatusPaid)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payment, nil
}

// GetPaymentByTransactionID возвращает оплату по идентификатору транзакции.
func (s *Storage) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	const op = "storage.GetPaymentByTransactionID"

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE transaction_id = $1`, transactionID)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payment, nil
}

// MarkPaymentPaid переводит оплату в PAID по transaction_id и сохраняет
// ответ шлюза. Повторный вызов для уже подтвержденной транзакции ничего
// не меняет: обновляются только строки в статусе UNPAID.
func (s *Storage) MarkPaymentPaid(ctx context.Context, transactionID string, gatewayData []byte) (*models.Payment, error) {
	const op = "storage.MarkPaymentPaid"

	row := s.DB.QueryRowContext(ctx,
		`UPDATE payments
		 SET status = $1, gateway_data = $2, updated_at = NOW()
		 WHERE transaction_id = $3 AND status = $4
		 RETURNING `+paymentColumns,
		models.PaymentStatusPaid, gatewayData, transactionID, models.PaymentStatusUnpaid)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payment, nil
}

// ListPayments возвращает страницу оплат и общее число строк под фильтрами.
func (s *Storage) ListPayments(ctx context.Context, filters map[string]string, opts query.Options) ([]*models.Payment, int, error) {
	const op = "storage.ListPayments"

	where, args := query.Where(query.Filters(filters, paymentFilterColumns))
	orderBy := query.OrderBy(opts, map[string]string{"createdAt": "created_at", "amount": "amount"})

	listSQL, listArgs := query.Paginate(
		fmt.Sprintf(`SELECT %s FROM payments %s %s`, paymentColumns, where, orderBy),
		args, opts)

	rows, err := s.DB.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, payment)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err = s.DB.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM payments %s`, where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// ListUserPayments возвращает оплаты одного пользователя без пагинации.
func (s *Storage) ListUserPayments(ctx context.Context, userID string) ([]*models.Payment, error) {
	const op = "storage.ListUserPayments"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+paymentColumns+`
		 FROM payments
		 WHERE user_id = $1
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, payment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
