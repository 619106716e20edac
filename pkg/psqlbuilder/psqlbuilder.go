package psqlbuilder

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Dialect определяет СУБД, под которую строятся запросы
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect разбирает имя драйвера из конфигурации
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("psqlbuilder: unsupported dialect %q", name)
	}
}

// Builder squirrel-билдер с плейсхолдерами нужного диалекта
type Builder struct {
	squirrel.StatementBuilderType
	dialect Dialect
}

// New создает билдер для диалекта
func New(dialect Dialect) Builder {
	format := squirrel.PlaceholderFormat(squirrel.Dollar)
	if dialect == SQLite {
		format = squirrel.Question
	}
	return Builder{
		StatementBuilderType: squirrel.StatementBuilder.PlaceholderFormat(format),
		dialect:              dialect,
	}
}

// Dialect возвращает диалект билдера
func (b Builder) Dialect() Dialect {
	return b.dialect
}

// ForUpdate добавляет блокировку строк там, где диалект её поддерживает.
// SQLite блокирует всю базу на время транзакции (_txlock=immediate), поэтому суффикс не нужен.
func (b Builder) ForUpdate(sb squirrel.SelectBuilder) squirrel.SelectBuilder {
	if b.dialect == Postgres {
		return sb.Suffix("FOR UPDATE")
	}
	return sb
}

var postgres = New(Postgres)

// Select создает SELECT с плейсхолдерами PostgreSQL
func Select(columns ...string) squirrel.SelectBuilder {
	return postgres.Select(columns...)
}

// Insert создает INSERT с плейсхолдерами PostgreSQL
func Insert(table string) squirrel.InsertBuilder {
	return postgres.Insert(table)
}

// Update создает UPDATE с плейсхолдерами PostgreSQL
func Update(table string) squirrel.UpdateBuilder {
	return postgres.Update(table)
}

// Delete создает DELETE с плейсхолдерами PostgreSQL
func Delete(table string) squirrel.DeleteBuilder {
	return postgres.Delete(table)
}
