package rowwriter

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/dberrors"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

const savepointName = "rowwriter_insert"

var (
	// ErrEmptyRow возвращается при попытке вставить строку без колонок
	ErrEmptyRow = errors.New("rowwriter: empty row")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rowwriter: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rowwriter: failed to execute query")
)

// Writer вставляет произвольный набор колонок в таблицу.
// Ошибки драйвера переводятся в типизированные ошибки dberrors, чтобы вызывающий мог на них реагировать.
type Writer struct {
	db      dbmetrics.DBExecutor
	builder psqlbuilder.Builder
}

// NewWriter создает новый экземпляр Writer
func NewWriter(db dbmetrics.DBExecutor, builder psqlbuilder.Builder) *Writer {
	return &Writer{db: db, builder: builder}
}

// Insert вставляет строку values в table.
// Если в контексте передана активная транзакция, использует её.
func (w *Writer) Insert(ctx context.Context, table string, values map[string]any) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: table %s", ErrEmptyRow, table)
	}

	executor := dbmetrics.GetExecutor(ctx, w.db)

	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	args := make([]any, len(columns))
	for i, column := range columns {
		args[i] = values[column]
	}

	query, queryArgs, err := w.builder.Insert(table).
		Columns(columns...).
		Values(args...).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Insert - build insert into %s: %v", ErrBuildQuery, table, err)
	}

	// Внутри транзакции неудачный INSERT оборачивается в savepoint,
	// иначе PostgreSQL помечает всю транзакцию как aborted и повторная вставка невозможна.
	inTx := dbmetrics.IsInTransaction(ctx)
	if inTx {
		if _, err := executor.ExecContext(ctx, "SAVEPOINT "+savepointName); err != nil {
			return fmt.Errorf("%w: Insert - create savepoint: %v", ErrExecQuery, err)
		}
	}

	if _, err := executor.ExecContext(ctx, query, queryArgs...); err != nil {
		if inTx {
			if _, rbErr := executor.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepointName); rbErr != nil {
				return fmt.Errorf("%w: Insert - rollback to savepoint: %v", ErrExecQuery, rbErr)
			}
		}
		return fmt.Errorf("%w: Insert - execute insert into %s: %w", ErrExecQuery, table, dberrors.Classify(table, err))
	}

	if inTx {
		if _, err := executor.ExecContext(ctx, "RELEASE SAVEPOINT "+savepointName); err != nil {
			return fmt.Errorf("%w: Insert - release savepoint: %v", ErrExecQuery, err)
		}
	}

	return nil
}
