package confirm_budget

import (
	"context"

	confirmBudget "github.com/avolkov/MSP-ReservationService/internal/usecase/confirm_budget"
)

type ConfirmBudgetUseCase interface {
	Execute(ctx context.Context, req *confirmBudget.Request) (*confirmBudget.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
