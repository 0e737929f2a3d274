package bulkmarkpaid

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Tado3/Star-Space/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) BulkMarkPaid(ctx context.Context, req models.DummyBulkPayment) (*models.BulkResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.BulkResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestBulkMarkPaidHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "missing ids are skipped silently",
			body: `{"ids":[1,2,3,999]}`,
			setupMock: func(m *MockService) {
				m.On("BulkMarkPaid", mock.Anything,
					models.DummyBulkPayment{IDs: []int{1, 2, 3, 999}}).
					Return(&models.BulkResult{UpdatedCount: 3}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"updated_count":3`,
		},
		{
			name: "per-record errors are reported",
			body: `{"ids":[1,2]}`,
			setupMock: func(m *MockService) {
				m.On("BulkMarkPaid", mock.Anything,
					models.DummyBulkPayment{IDs: []int{1, 2}}).
					Return(&models.BulkResult{
						UpdatedCount: 1,
						Errors:       []string{"subscriber 2: db error"},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"subscriber 2: db error"`,
		},
		{
			name:           "empty id list",
			body:           `{"ids":[]}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "malformed json",
			body:           `{broken`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/subscribers/bulk/payment", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
