package create_review

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
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/reviews"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/reviews/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.ReviewResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func reviewRequest(salonID string, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/salons/"+salonID+"/reviews", strings.NewReader(body))
	return mux.SetURLVars(r, map[string]string{"salonId": salonID})
}

func TestHandleCreateReview(t *testing.T) {
	svc := &mockService{}
	salonID := uuid.New()
	userID := uuid.New()

	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateReviewRequest) bool {
		return req.SalonID == salonID && req.UserID != nil && *req.UserID == userID && req.Rating == 5
	})).Return(&models.ReviewResponse{ID: uuid.New(), SalonID: salonID, Rating: 5}, nil)

	r := reviewRequest(salonID.String(), `{"rating":5,"comment":"great"}`)
	r = r.WithContext(middleware.WithUserID(r.Context(), userID))

	w := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp models.ReviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Rating)
	assert.False(t, resp.Anonymous)
	svc.AssertExpectations(t)
}

func TestHandleCreateReviewGuest(t *testing.T) {
	svc := &mockService{}
	salonID := uuid.New()

	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateReviewRequest) bool {
		return req.UserID == nil
	})).Return(&models.ReviewResponse{ID: uuid.New(), SalonID: salonID, Rating: 3, Anonymous: true}, nil)

	w := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(w, reviewRequest(salonID.String(), `{"rating":3}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleCreateReviewErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid", reviews.ErrInvalidInput, http.StatusBadRequest, msgInvalidData},
		{"salon not found", reviews.ErrSalonNotFound, http.StatusNotFound, msgSalonNotFound},
		{"policy", reviews.ErrPermissionDenied, http.StatusForbidden, msgPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			NewHandler(svc, logger.Nop()).Handle(w, reviewRequest(uuid.NewString(), `{"rating":4}`))

			assert.Equal(t, tt.status, w.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestHandleCreateReviewBadInput(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, reviewRequest("bad", `{"rating":4}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.Handle(w, reviewRequest(uuid.NewString(), `{"rating":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
