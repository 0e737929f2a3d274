package deactivate

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	services "github.com/Tado3/Star-Space/internal/services/subscriber"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Deactivate(ctx context.Context, id int, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

func TestDeactivateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "deactivate with reason",
			id:   "5",
			body: `{"reason":"non-payment"}`,
			setupMock: func(m *MockService) {
				m.On("Deactivate", mock.Anything, 5, "non-payment").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name: "deactivate without body",
			id:   "5",
			body: "",
			setupMock: func(m *MockService) {
				m.On("Deactivate", mock.Anything, 5, "").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name: "subscriber not found",
			id:   "404",
			body: "",
			setupMock: func(m *MockService) {
				m.On("Deactivate", mock.Anything, 404, "").Return(services.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"subscriber not found"`,
		},
		{
			name:           "invalid id in url",
			id:             "abc",
			body:           "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"failed to decode id from url"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/subscribers/"+tt.id+"/deactivate", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
