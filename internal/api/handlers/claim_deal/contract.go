package claim_deal

import (
	"context"

	claimDeal "github.com/m04kA/SMC-SalonBookingService/internal/usecase/claim_deal"
)

type ClaimDealUseCase interface {
	Execute(ctx context.Context, req *claimDeal.Request) (*claimDeal.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
