package reviews

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("reviews: salon not found")

	// ErrPermissionDenied возвращается, когда хранилище отклонило отзыв политикой доступа
	ErrPermissionDenied = errors.New("reviews: permission denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reviews: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reviews: internal error")
)
