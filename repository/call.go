package repository

import (
	"context"
)

// CallRepository runs stored routines by name. Names are placed into the statement text as
// given; only the arguments are bound.
type CallRepository interface {
	CallProcedure(ctx context.Context, name string, args []any) error
	SelectFunction(ctx context.Context, name string, args []any) ([]map[string]any, error)
}
