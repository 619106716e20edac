package list_deals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/deals"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/deals/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) ListActive(ctx context.Context, salonID uuid.UUID) (*models.DealListResponse, error) {
	args := m.Called(ctx, salonID)
	if resp, ok := args.Get(0).(*models.DealListResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func dealsRequest(salonID string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/salons/"+salonID+"/deals", nil)
	return mux.SetURLVars(r, map[string]string{"salonId": salonID})
}

func TestHandleListDeals(t *testing.T) {
	svc := &mockService{}
	salonID := uuid.New()

	svc.On("ListActive", mock.Anything, salonID).Return(&models.DealListResponse{
		Deals: []models.DealResponse{{}, {}},
	}, nil)

	w := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(w, dealsRequest(salonID.String()))

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.DealListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Deals, 2)
}

func TestHandleListDealsErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"salon not found", deals.ErrSalonNotFound, http.StatusNotFound, msgSalonNotFound},
		{"internal", errors.New("db down"), http.StatusInternalServerError, "внутренняя ошибка сервера"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("ListActive", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			NewHandler(svc, logger.Nop()).Handle(w, dealsRequest(uuid.NewString()))

			assert.Equal(t, tt.status, w.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestHandleListDealsInvalidSalonID(t *testing.T) {
	svc := &mockService{}

	w := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(w, dealsRequest("bad"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListActive", mock.Anything, mock.Anything)
}
