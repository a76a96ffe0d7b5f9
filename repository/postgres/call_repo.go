package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/piar/gateway/repository"
)

type callRepository struct {
	db DB
}

// NewCallRepository returns a repository that invokes stored procedures and set-returning
// functions on the pool.
func NewCallRepository(db DB) repository.CallRepository {
	return &callRepository{db: db}
}

func (r *callRepository) CallProcedure(ctx context.Context, name string, args []any) error {
	_, err := r.db.Exec(ctx, ProcedureStatement(name, len(args)), args...)
	return err
}

func (r *callRepository) SelectFunction(ctx context.Context, name string, args []any) ([]map[string]any, error) {
	rows, err := r.db.Query(ctx, FunctionStatement(name, len(args)), args...)
	if err != nil {
		return nil, err
	}
	result, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []map[string]any{}
	}
	return result, nil
}

// ProcedureStatement builds CALL name($1,...,$n).
func ProcedureStatement(name string, argc int) string {
	return "CALL " + name + "(" + placeholders(argc) + ")"
}

// FunctionStatement builds SELECT * FROM name($1,...,$n).
func FunctionStatement(name string, argc int) string {
	return "SELECT * FROM " + name + "(" + placeholders(argc) + ")"
}
