package dberrors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// PostgreSQL SQLSTATE коды, которые распознает слой хранения
const (
	pqUndefinedColumn       = "42703"
	pqInsufficientPrivilege = "42501"
	pqExclusionViolation    = "23P01"
	pqUniqueViolation       = "23505"
	pqSerializationFailure  = "40001"
	pqDeadlockDetected      = "40P01"
)

var (
	// ErrExclusion возвращается, когда запись нарушает ограничение на пересечение интервалов (или уникальность)
	ErrExclusion = errors.New("dberrors: exclusion constraint violated")

	// ErrSchema базовая ошибка расхождения схемы (см. SchemaError)
	ErrSchema = errors.New("dberrors: unknown column")

	// ErrPolicy базовая ошибка отказа политики доступа (см. PolicyError)
	ErrPolicy = errors.New("dberrors: permission denied")
)

var (
	pqColumnPattern     = regexp.MustCompile(`column "([^"]+)"`)
	sqliteColumnPattern = regexp.MustCompile(`has no column named (\S+)`)
)

// SchemaError хранилище не знает колонку Column таблицы Table
type SchemaError struct {
	Table  string
	Column string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s.%s: %v", ErrSchema, e.Table, e.Column, e.Err)
}

func (e *SchemaError) Unwrap() []error {
	return []error{ErrSchema, e.Err}
}

// PolicyError хранилище отклонило запись политикой доступа (RLS, права, триггер)
type PolicyError struct {
	Table string
	Err   error
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPolicy, e.Table, e.Err)
}

func (e *PolicyError) Unwrap() []error {
	return []error{ErrPolicy, e.Err}
}

// Classify переводит ошибку драйвера в типизированную ошибку слоя хранения.
// Нераспознанные ошибки возвращаются без изменений.
func Classify(table string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifyPostgres(table, pqErr, err)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return classifySQLite(table, liteErr, err)
	}

	return err
}

func classifyPostgres(table string, pqErr *pq.Error, err error) error {
	switch string(pqErr.Code) {
	case pqUndefinedColumn:
		if column := pqErr.Column; column != "" {
			return &SchemaError{Table: table, Column: column, Err: err}
		}
		if m := pqColumnPattern.FindStringSubmatch(pqErr.Message); m != nil {
			return &SchemaError{Table: table, Column: m[1], Err: err}
		}
	case pqInsufficientPrivilege:
		return &PolicyError{Table: table, Err: err}
	case pqExclusionViolation, pqUniqueViolation:
		return fmt.Errorf("%w: %v", ErrExclusion, err)
	}
	return err
}

func classifySQLite(table string, liteErr sqlite3.Error, err error) error {
	msg := liteErr.Error()

	if m := sqliteColumnPattern.FindStringSubmatch(msg); m != nil {
		return &SchemaError{Table: table, Column: m[1], Err: err}
	}

	switch liteErr.Code {
	case sqlite3.ErrPerm, sqlite3.ErrAuth:
		return &PolicyError{Table: table, Err: err}
	case sqlite3.ErrConstraint:
		lower := strings.ToLower(msg)
		if strings.Contains(lower, "permission denied") {
			return &PolicyError{Table: table, Err: err}
		}
		if strings.Contains(lower, "exclusion violation") || liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("%w: %v", ErrExclusion, err)
		}
	}
	return err
}

// AsSchemaError извлекает SchemaError из цепочки ошибок
func AsSchemaError(err error) (*SchemaError, bool) {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr, true
	}
	return nil, false
}

// IsPolicy проверяет, что ошибка является отказом политики доступа
func IsPolicy(err error) bool {
	var policyErr *PolicyError
	return errors.As(err, &policyErr)
}

// IsExclusion проверяет нарушение ограничения на пересечение
func IsExclusion(err error) bool {
	return errors.Is(err, ErrExclusion)
}

// IsSerializationFailure проверяет конфликт сериализуемой транзакции, после которого транзакцию можно повторить
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == pqSerializationFailure || code == pqDeadlockDetected
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}

	return false
}
