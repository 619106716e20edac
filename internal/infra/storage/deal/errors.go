package deal

import "errors"

var (
	// ErrDealNotFound возвращается, когда сделка не найдена
	ErrDealNotFound = errors.New("deal.repository: deal not found")

	// ErrDealNotActive возвращается, когда сделка уже забрана или истекла
	ErrDealNotActive = errors.New("deal.repository: deal is not active")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("deal.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("deal.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("deal.repository: failed to scan row")
)
