package resilient

import "errors"

var (
	// ErrSchemaDrift возвращается, когда схема хранилища отвергает обязательную колонку
	// или колонку, которой нет в payload
	ErrSchemaDrift = errors.New("resilient: schema drift")

	// ErrPermissionDenied возвращается, когда политика доступа хранилища отклонила запись
	ErrPermissionDenied = errors.New("resilient: permission denied")

	// ErrInsert возвращается при прочих ошибках вставки
	ErrInsert = errors.New("resilient: insert failed")

	// ErrInvalidPayload возвращается, когда в payload нет обязательных полей
	ErrInvalidPayload = errors.New("resilient: invalid payload")
)
