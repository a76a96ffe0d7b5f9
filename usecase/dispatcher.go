package usecase

import (
	"context"
	"sync"

	"github.com/piar/gateway/domain"
)

// CallHandler runs a routine of one kind.
type CallHandler func(ctx context.Context, call domain.Call) (*domain.CallResult, error)

// Dispatcher routes a call to the handler registered for its kind.
type Dispatcher struct {
	handlers map[domain.CallKind]CallHandler
	mu       sync.RWMutex
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[domain.CallKind]CallHandler),
	}
}

func (d *Dispatcher) Register(kind domain.CallKind, handler CallHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = handler
}

// Dispatch validates and classifies the call before handing it over. Invalid shapes and
// unrecognized names never reach a handler.
func (d *Dispatcher) Dispatch(ctx context.Context, call domain.Call) (*domain.CallResult, error) {
	if err := call.Validate(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	handler, ok := d.handlers[call.Kind()]
	d.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUnknownCallKind
	}
	return handler(ctx, call)
}
