package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/revalto/review-platform/internal/http/middlewarectx"
	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/services"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, id string, viewerID *string) (*models.ReviewWithAccess, error) {
	args := m.Called(ctx, id, viewerID)
	if res := args.Get(0); res != nil {
		return res.(*models.ReviewWithAccess), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	const reviewID = "0b2f8f7e-9d55-4f4e-8f4c-7b9f3d1a2c3d"
	const viewerID = "9d4c1a7b-3e2f-4d5c-8a9b-0c1d2e3f4a5b"

	tests := []struct {
		name           string
		viewerID       *string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение обзора анонимом",
			setupMock: func(m *MockService) {
				review := &models.ReviewWithAccess{
					Review: models.Review{
						ID:     reviewID,
						Title:  "Отличный телевизор",
						Status: models.ReviewStatusPublished,
					},
				}
				m.On("Get", mock.Anything, reviewID, (*string)(nil)).Return(review, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Отличный телевизор"`,
		},
		{
			name:     "авторизованный читатель передается в сервис",
			viewerID: strPtr(viewerID),
			setupMock: func(m *MockService) {
				review := &models.ReviewWithAccess{
					Review:          models.Review{ID: reviewID, IsPremium: true},
					IsPremiumLocked: true,
				}
				m.On("Get", mock.Anything, reviewID, strPtr(viewerID)).Return(review, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"isPremiumLocked":true`,
		},
		{
			name: "обзор не найден",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, reviewID, (*string)(nil)).
					Return(nil, services.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"review not found"`,
		},
		{
			name: "ошибка сервиса чтения",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, reviewID, (*string)(nil)).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not get review"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/reviews/"+reviewID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", reviewID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.viewerID != nil {
				ctx = context.WithValue(ctx, middlewarectx.UserID, *tt.viewerID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

func strPtr(s string) *string { return &s }
