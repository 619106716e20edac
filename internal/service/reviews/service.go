package reviews

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/resilient"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/reviews/models"
)

// Service сервис для работы с отзывами
type Service struct {
	writer    ReviewWriter
	directory SalonDirectory
	logger    Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(writer ReviewWriter, directory SalonDirectory, logger Logger) *Service {
	return &Service{
		writer:    writer,
		directory: directory,
		logger:    logger,
	}
}

// Create сохраняет отзыв о салоне.
// Если хранилище не пускает отзыв с автором, он может сохраниться анонимно
func (s *Service) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: review for salon=%s by user=%v, rating=%d", req.SalonID, req.UserID, req.Rating)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что салон существует
	if _, err := s.directory.GetByID(ctx, req.SalonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("Create: salon id=%s not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Create: failed to get salon id=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Create - failed to get salon: %v", ErrInternal, err)
	}

	// 3. Сохраняем отзыв
	payload := resilient.Payload{
		"salon_id": req.SalonID,
		"rating":   req.Rating,
	}
	if req.UserID != nil {
		payload["user_id"] = *req.UserID
	}
	if req.AppointmentID != nil {
		payload["appointment_id"] = *req.AppointmentID
	}
	if req.Comment != nil {
		payload["comment"] = *req.Comment
	}

	record, err := s.writer.InsertReview(ctx, payload)
	if err != nil {
		if errors.Is(err, resilient.ErrPermissionDenied) {
			s.logger.Warn("Create: storage policy rejected review for salon=%s: %v", req.SalonID, err)
			return nil, ErrPermissionDenied
		}
		s.logger.Error("Create: failed to insert review for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Create - failed to insert review: %v", ErrInternal, err)
	}

	anonymous := req.UserID == nil || slices.Contains(record.Dropped, "user_id")
	if len(record.Dropped) > 0 {
		s.logger.Warn("Create: review id=%s saved without fields %v", record.ID, record.Dropped)
	}

	s.logger.Info("Create: successfully created review id=%s", record.ID)
	return &models.ReviewResponse{
		ID:            record.ID,
		SalonID:       req.SalonID,
		AppointmentID: req.AppointmentID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		Anonymous:     anonymous,
		CreatedAt:     record.CreatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *models.CreateReviewRequest) error {
	if req.SalonID == uuid.Nil {
		return fmt.Errorf("%w: salonID is required", ErrInvalidInput)
	}

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	if req.Comment != nil && len([]rune(*req.Comment)) > domain.MaxReviewCommentLength {
		return fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, domain.MaxReviewCommentLength)
	}

	return nil
}
