package resilient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/dberrors"
)

const (
	tableAppointments = "appointments"
	tableReviews      = "reviews"

	columnID        = "id"
	columnCreatedAt = "created_at"
	columnSalonID   = "salon_id"
	columnUserID    = "user_id"
)

// serviceNameAliases разные написания названия услуги, которые встречаются в payload.
// Если хранилище не знает одно из них, выбрасываются все сразу.
var serviceNameAliases = []string{"service_name", "service", "service_title", "serviceName"}

// Payload набор колонок для вставки
type Payload map[string]any

// Record результат успешной вставки
type Record struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Values    Payload
	Dropped   []string
}

type tableRules struct {
	required map[string]bool
	aliases  [][]string
}

var (
	appointmentRules = tableRules{
		required: map[string]bool{columnID: true, columnSalonID: true},
		aliases:  [][]string{serviceNameAliases},
	}
	reviewRules = tableRules{
		required: map[string]bool{columnID: true},
	}
)

// Adapter вставляет записи и отзывы, подстраиваясь под расхождения схемы хранилища
type Adapter struct {
	inserter          Inserter
	logger            Logger
	drift             DriftObserver
	timeProvider      TimeProvider
	anonymousFallback bool
}

// Option настройка адаптера
type Option func(*Adapter)

// WithDriftObserver подключает учет выброшенных колонок
func WithDriftObserver(observer DriftObserver) Option {
	return func(a *Adapter) {
		a.drift = observer
	}
}

// WithAnonymousReviewFallback включает повтор вставки отзыва без автора при отказе политики доступа
func WithAnonymousReviewFallback(enabled bool) Option {
	return func(a *Adapter) {
		a.anonymousFallback = enabled
	}
}

// WithTimeProvider подменяет источник времени для created_at
func WithTimeProvider(tp TimeProvider) Option {
	return func(a *Adapter) {
		a.timeProvider = tp
	}
}

// NewAdapter создает новый адаптер
func NewAdapter(inserter Inserter, logger Logger, opts ...Option) *Adapter {
	a := &Adapter{
		inserter:          inserter,
		logger:            logger,
		timeProvider:      RealTimeProvider{},
		anonymousFallback: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// InsertAppointment вставляет запись, выбрасывая колонки, которых нет в схеме.
// id и salon_id не выбрасываются никогда.
func (a *Adapter) InsertAppointment(ctx context.Context, payload Payload) (*Record, error) {
	if _, ok := payload[columnSalonID]; !ok {
		return nil, fmt.Errorf("%w: InsertAppointment - salon_id is required", ErrInvalidPayload)
	}

	values, id, createdAt, err := a.prepare(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: InsertAppointment - %v", ErrInvalidPayload, err)
	}

	dropped, err := a.insertStripping(ctx, tableAppointments, values, appointmentRules)
	if err != nil {
		if dberrors.IsPolicy(err) {
			return nil, fmt.Errorf("%w: InsertAppointment - %w", ErrPermissionDenied, err)
		}
		return nil, err
	}

	return &Record{ID: id, CreatedAt: createdAt, Values: values, Dropped: dropped}, nil
}

// InsertReview вставляет отзыв.
// Если политика доступа отклонила вставку и fallback включен, повторяет один раз без user_id и salon_id.
func (a *Adapter) InsertReview(ctx context.Context, payload Payload) (*Record, error) {
	values, id, createdAt, err := a.prepare(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: InsertReview - %v", ErrInvalidPayload, err)
	}

	dropped, err := a.insertStripping(ctx, tableReviews, values, reviewRules)
	if err == nil {
		return &Record{ID: id, CreatedAt: createdAt, Values: values, Dropped: dropped}, nil
	}
	if !dberrors.IsPolicy(err) {
		return nil, err
	}
	if !a.anonymousFallback {
		return nil, fmt.Errorf("%w: InsertReview - %w", ErrPermissionDenied, err)
	}

	a.logger.Warn("InsertReview: policy rejected review %s, retrying anonymously: %v", id, err)

	anonymous := make(Payload, len(values))
	for column, value := range values {
		anonymous[column] = value
	}
	for _, column := range []string{columnUserID, columnSalonID} {
		if _, ok := anonymous[column]; ok {
			delete(anonymous, column)
			dropped = append(dropped, column)
		}
	}

	more, err := a.insertStripping(ctx, tableReviews, anonymous, reviewRules)
	if err != nil {
		if dberrors.IsPolicy(err) {
			return nil, fmt.Errorf("%w: InsertReview - anonymous retry: %w", ErrPermissionDenied, err)
		}
		return nil, err
	}

	return &Record{ID: id, CreatedAt: createdAt, Values: anonymous, Dropped: append(dropped, more...)}, nil
}

// prepare копирует payload и дополняет его id и created_at
func (a *Adapter) prepare(payload Payload) (Payload, uuid.UUID, time.Time, error) {
	values := make(Payload, len(payload)+2)
	for column, value := range payload {
		values[column] = value
	}

	id, err := idOf(values[columnID])
	if err != nil {
		return nil, uuid.Nil, time.Time{}, err
	}
	values[columnID] = id

	createdAt, ok := values[columnCreatedAt].(time.Time)
	if !ok {
		createdAt = a.timeProvider.Now()
		values[columnCreatedAt] = createdAt
	}

	return values, id, createdAt, nil
}

// insertStripping повторяет вставку, пока хранилище сообщает о неизвестных колонках.
// Каждый повтор удаляет хотя бы одну колонку из values, поэтому число попыток ограничено размером payload.
func (a *Adapter) insertStripping(ctx context.Context, table string, values Payload, rules tableRules) ([]string, error) {
	dropped := make([]string, 0)

	for {
		err := a.inserter.Insert(ctx, table, values)
		if err == nil {
			return dropped, nil
		}

		schemaErr, ok := dberrors.AsSchemaError(err)
		if !ok {
			if dberrors.IsPolicy(err) {
				return dropped, err
			}
			return dropped, fmt.Errorf("%w: %s: %w", ErrInsert, table, err)
		}

		column, present := lookupColumn(values, schemaErr.Column)
		if !present {
			return dropped, fmt.Errorf("%w: %s.%s is not in payload: %w", ErrSchemaDrift, table, schemaErr.Column, err)
		}
		if rules.required[column] {
			return dropped, fmt.Errorf("%w: required column %s.%s rejected: %w", ErrSchemaDrift, table, column, err)
		}

		for _, name := range rules.group(column) {
			if _, ok := values[name]; !ok {
				continue
			}
			delete(values, name)
			dropped = append(dropped, name)
			if a.drift != nil {
				a.drift.ObserveSchemaDrift(table, name)
			}
		}

		a.logger.Warn("resilient: %s has no column %s, retrying without it", table, column)
	}
}

// group возвращает колонку вместе с её синонимами
func (r tableRules) group(column string) []string {
	for _, aliases := range r.aliases {
		for _, alias := range aliases {
			if alias == column {
				return aliases
			}
		}
	}
	return []string{column}
}

// lookupColumn ищет колонку в payload без учета регистра.
// PostgreSQL приводит имена без кавычек к нижнему регистру, поэтому serviceName приходит как servicename.
func lookupColumn(values Payload, column string) (string, bool) {
	if _, ok := values[column]; ok {
		return column, true
	}
	for name := range values {
		if strings.EqualFold(name, column) {
			return name, true
		}
	}
	return "", false
}

func idOf(value any) (uuid.UUID, error) {
	switch v := value.(type) {
	case nil:
		return uuid.New(), nil
	case uuid.UUID:
		if v == uuid.Nil {
			return uuid.New(), nil
		}
		return v, nil
	case string:
		return uuid.Parse(v)
	default:
		return uuid.Nil, fmt.Errorf("unsupported id type %T", value)
	}
}
