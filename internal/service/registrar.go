package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/campusware/registrar/internal/repository"
)

// RegistrarService exposes the registration operations backed by database
// routines. The column-order contract of the routine surface is honored
// here and nowhere else: create routines return the new identifier in
// column 0; the two-value create returns a secondary value in column 1.
type RegistrarService interface {
	// CreateOne invokes a create routine and returns the identifier in column 0.
	CreateOne(ctx context.Context, routine string, args ...any) (uuid.UUID, error)
	// CreatePair invokes a two-value create routine: id in column 0, a
	// secondary value such as the student number in column 1.
	CreatePair(ctx context.Context, routine string, args ...any) (uuid.UUID, string, error)
	// Exec invokes an effect-only routine, discarding any rows.
	Exec(ctx context.Context, routine string, args ...any) error
	// List invokes a row-returning routine and returns rows in column order.
	List(ctx context.Context, routine string, args ...any) ([][]any, error)
}

type Registrar struct {
	procs repository.ProcedureInvoker
}

// NewRegistrar constructs the registrar service over the routine invoker.
func NewRegistrar(procs repository.ProcedureInvoker) *Registrar {
	return &Registrar{procs: procs}
}

func (s *Registrar) CreateOne(ctx context.Context, routine string, args ...any) (uuid.UUID, error) {
	rows, err := s.procs.Invoke(ctx, routine, args...)
	if err != nil {
		return uuid.Nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return uuid.Nil, fmt.Errorf("%s returned no id", routine)
	}
	return UUIDValue(rows[0][0])
}

func (s *Registrar) CreatePair(ctx context.Context, routine string, args ...any) (uuid.UUID, string, error) {
	rows, err := s.procs.Invoke(ctx, routine, args...)
	if err != nil {
		return uuid.Nil, "", err
	}
	if len(rows) == 0 || len(rows[0]) < 2 {
		return uuid.Nil, "", fmt.Errorf("%s returned no id pair", routine)
	}
	id, err := UUIDValue(rows[0][0])
	if err != nil {
		return uuid.Nil, "", err
	}
	second, err := stringValue(rows[0][1])
	if err != nil {
		return uuid.Nil, "", err
	}
	return id, second, nil
}

func (s *Registrar) Exec(ctx context.Context, routine string, args ...any) error {
	_, err := s.procs.Invoke(ctx, routine, args...)
	return err
}

func (s *Registrar) List(ctx context.Context, routine string, args ...any) ([][]any, error) {
	return s.procs.Invoke(ctx, routine, args...)
}

func stringValue(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case int64:
		return fmt.Sprintf("%d", x), nil
	case int32:
		return fmt.Sprintf("%d", x), nil
	case nil:
		return "", errors.New("unexpected NULL column")
	default:
		return fmt.Sprintf("%v", x), nil
	}
}
