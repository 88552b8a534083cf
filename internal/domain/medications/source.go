package medications

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
	ErrOutOfStock   = errors.New("out of stock")
)

// Source es el backend dueño del inventario (REST externo o memoria en dev).
type Source interface {
	List(ctx context.Context) ([]Medication, error)
	Get(ctx context.Context, id string) (Medication, error)
	Create(ctx context.Context, in CreateInput) (Medication, error)
	Update(ctx context.Context, id string, in UpdateInput) (Medication, error)
	Delete(ctx context.Context, id string) error

	// TakeDose descuenta una unidad del stock.
	TakeDose(ctx context.Context, id string) (Medication, error)
}
