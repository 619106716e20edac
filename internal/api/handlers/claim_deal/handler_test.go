package claim_deal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	claimDeal "github.com/m04kA/SMC-SalonBookingService/internal/usecase/claim_deal"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *claimDeal.Request) (*claimDeal.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*claimDeal.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func claimRequest(dealID string, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(http.MethodPost, "/api/v1/deals/"+dealID+"/claim", http.NoBody)
	} else {
		r = httptest.NewRequest(http.MethodPost, "/api/v1/deals/"+dealID+"/claim", strings.NewReader(body))
	}
	return mux.SetURLVars(r, map[string]string{"dealId": dealID})
}

func TestHandleClaimWithoutBody(t *testing.T) {
	uc := &mockUseCase{}
	dealID := uuid.New()

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *claimDeal.Request) bool {
		return req.DealID == dealID && req.UserID == nil && req.PaymentMethod == nil
	})).Return(&claimDeal.Response{
		AppointmentID: uuid.New(),
		DealID:        dealID,
		StartTime:     "10:15",
		Price:         1200,
		OriginalPrice: 2000,
		Status:        domain.StatusConfirmed,
		PaymentMethod: domain.PaymentCash,
	}, nil)

	w := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(w, claimRequest(dealID.String(), ""))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp ClaimDealResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1200.0, resp.Price)
	assert.Equal(t, "10:15", resp.StartTime)
}

func TestHandleClaimWithPaymentMethod(t *testing.T) {
	uc := &mockUseCase{}
	dealID := uuid.New()

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *claimDeal.Request) bool {
		return req.PaymentMethod != nil && *req.PaymentMethod == domain.PaymentOnline
	})).Return(&claimDeal.Response{DealID: dealID}, nil)

	w := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(w, claimRequest(dealID.String(), `{"paymentMethod":"online"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	uc.AssertExpectations(t)
}

func TestHandleClaimErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", claimDeal.ErrDealNotFound, http.StatusNotFound, msgDealNotFound},
		{"unavailable", claimDeal.ErrDealUnavailable, http.StatusConflict, msgDealUnavailable},
		{"overlap", claimDeal.ErrSlotNoLongerAvailable, http.StatusConflict, msgSlotNoLongerAvailable},
		{"busy", claimDeal.ErrBusy, http.StatusConflict, msgBusy},
		{"payment", claimDeal.ErrPaymentMethodNotAccepted, http.StatusBadRequest, msgPaymentNotAccepted},
		{"time value", claimDeal.ErrInvalidTimeValue, http.StatusBadRequest, msgInvalidTimeValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			NewHandler(uc, logger.Nop()).Handle(w, claimRequest(uuid.NewString(), ""))

			assert.Equal(t, tt.status, w.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestHandleClaimBadInput(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, claimRequest("not-a-uuid", ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.Handle(w, claimRequest(uuid.NewString(), `{"paymentMethod":"barter"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
