package resilient

import (
	"context"
	"time"
)

// Inserter вставляет строку в таблицу и возвращает типизированные ошибки dberrors
type Inserter interface {
	Insert(ctx context.Context, table string, values map[string]any) error
}

// DriftObserver учитывает колонки, выброшенные из-за расхождения схемы
type DriftObserver interface {
	ObserveSchemaDrift(table, column string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
