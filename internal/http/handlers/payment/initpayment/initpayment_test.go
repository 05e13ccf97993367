package initpayment

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/revalto/review-platform/internal/http/middlewarectx"
	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/services"
)

// MockService реализует интерфейс initpayment.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) InitPayment(ctx context.Context, userID string, req models.DummyInitPayment) (string, error) {
	args := m.Called(ctx, userID, req)
	return args.String(0), args.Error(1)
}

func TestInitPaymentHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	const userID = "9d4c1a7b-3e2f-4d5c-8a9b-0c1d2e3f4a5b"
	const reviewID = "0b2f8f7e-9d55-4f4e-8f4c-7b9f3d1a2c3d"
	body := `{"review_id":"` + reviewID + `"}`

	tests := []struct {
		name           string
		body           string
		withUser       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешная инициация платежа",
			body:     body,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("InitPayment", mock.Anything, userID, models.DummyInitPayment{ReviewID: reviewID}).
					Return("https://sandbox.sslcommerz.com/pay/abc", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"payment_url":"https://sandbox.sslcommerz.com/pay/abc"`,
		},
		{
			name:           "нет пользователя в контексте",
			body:           body,
			withUser:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:           "невалидный review_id",
			body:           `{"review_id":"not-a-uuid"}`,
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:     "обзор не премиальный",
			body:     body,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("InitPayment", mock.Anything, userID, mock.Anything).
					Return("", services.ErrNotPremium)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"this is not premium content"`,
		},
		{
			name:     "обзор уже куплен",
			body:     body,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("InitPayment", mock.Anything, userID, mock.Anything).
					Return("", services.ErrAlreadyPurchased)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:     "шлюз недоступен",
			body:     body,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("InitPayment", mock.Anything, userID, mock.Anything).
					Return("", services.ErrPaymentGateway)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `"error":"payment error occurred"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/payments/init", strings.NewReader(tt.body))
			if tt.withUser {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, userID))
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
