package call

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/piar/gateway/domain"
	"github.com/piar/gateway/internal/metrics"
	"github.com/piar/gateway/repository"
	"github.com/piar/gateway/usecase"
)

type UseCase struct {
	calls      repository.CallRepository
	dispatcher *usecase.Dispatcher
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func New(calls repository.CallRepository, m *metrics.Metrics, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		calls:      calls,
		dispatcher: usecase.NewDispatcher(),
		metrics:    m,
		logger:     logger,
	}
	uc.dispatcher.Register(domain.CallProcedure, uc.callProcedure)
	uc.dispatcher.Register(domain.CallFunction, uc.selectFunction)
	return uc
}

// Execute runs one routine call. Database failures come back as INTERNAL errors carrying the
// driver message untouched.
func (uc *UseCase) Execute(ctx context.Context, call domain.Call) (*domain.CallResult, error) {
	kind := string(call.Kind())
	started := time.Now()

	result, err := uc.dispatcher.Dispatch(ctx, call)
	switch {
	case err == nil:
		uc.metrics.ObserveCall(kind, metrics.OutcomeOK, time.Since(started))
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		uc.metrics.ObserveCall(kind, metrics.OutcomeRejected, 0)
	default:
		uc.metrics.ObserveCall(kind, metrics.OutcomeError, time.Since(started))
		uc.logger.Error("routine call failed",
			zap.String("routine", call.Name),
			zap.Int("args", len(call.Args)),
			zap.Error(err))
	}
	return result, err
}

func (uc *UseCase) callProcedure(ctx context.Context, call domain.Call) (*domain.CallResult, error) {
	if err := uc.calls.CallProcedure(ctx, call.Name, call.Args); err != nil {
		return nil, domain.Internal(err)
	}
	return &domain.CallResult{
		Kind:    domain.CallProcedure,
		Message: call.Name + " ejecutado correctamente",
	}, nil
}

func (uc *UseCase) selectFunction(ctx context.Context, call domain.Call) (*domain.CallResult, error) {
	rows, err := uc.calls.SelectFunction(ctx, call.Name, call.Args)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return &domain.CallResult{
		Kind: domain.CallFunction,
		Rows: rows,
	}, nil
}
