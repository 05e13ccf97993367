package list

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
	"github.com/revalto/review-platform/internal/query"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, searchTerm string, filters map[string]string, opts query.Options, isAdmin bool) ([]*models.Review, int, error) {
	args := m.Called(ctx, searchTerm, filters, opts, isAdmin)
	if res := args.Get(0); res != nil {
		return res.([]*models.Review), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		role           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный список с поиском и фильтром",
			url:  "/reviews?searchTerm=tv&categoryId=cat-1&unknown=zzz&page=2&limit=5",
			setupMock: func(m *MockService) {
				opts := query.Options{Page: 2, Limit: 5}
				filters := map[string]string{"categoryId": "cat-1"}
				reviews := []*models.Review{{ID: "r-1", Title: "TV"}}
				m.On("List", mock.Anything, "tv", filters, opts, false).Return(reviews, 11, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":11`,
		},
		{
			name: "администратор получает признак isAdmin",
			url:  "/reviews",
			role: models.RoleAdmin,
			setupMock: func(m *MockService) {
				opts := query.Options{Page: query.DefaultPage, Limit: query.DefaultLimit}
				m.On("List", mock.Anything, "", map[string]string{}, opts, true).
					Return([]*models.Review{}, 0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":0`,
		},
		{
			name:           "отрицательная страница отклоняется валидацией",
			url:            "/reviews?page=-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.role != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Role, tt.role))
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
