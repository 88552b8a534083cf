package restapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"medicine-tracker/internal/domain/medications"
	"medicine-tracker/internal/platform/httpclient"
)

const medicinesPath = "/api/medicines"

// Client implementa medications.Source contra el backend REST del inventario.
//
//	GET    /api/medicines        lista
//	POST   /api/medicines        alta
//	PATCH  /api/medicines/{id}   edición
//	PUT    /api/medicines/{id}   tomar dosis (descuenta stock)
//	DELETE /api/medicines/{id}   baja
type Client struct {
	http *httpclient.Client
}

func New(c *httpclient.Client) (*Client, error) {
	if c == nil || c.BaseURL == "" {
		return nil, errors.New("restapi: base url required")
	}
	return &Client{http: c}, nil
}

func itemPath(id string) string {
	return medicinesPath + "/" + url.PathEscape(id)
}

// mapErr traduce 404/400 del backend a los sentinels del dominio.
func mapErr(err error) error {
	switch httpclient.StatusCode(err) {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", medications.ErrNotFound, err)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %v", medications.ErrInvalidInput, err)
	default:
		return err
	}
}

func (c *Client) List(ctx context.Context) ([]medications.Medication, error) {
	var rows []wireMedication
	if err := c.http.DoJSON(ctx, http.MethodGet, medicinesPath, nil, &rows); err != nil {
		return nil, fmt.Errorf("list medicines: %w", mapErr(err))
	}
	out := make([]medications.Medication, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// Get no tiene endpoint propio en el backend: se busca en la lista.
func (c *Client) Get(ctx context.Context, id string) (medications.Medication, error) {
	list, err := c.List(ctx)
	if err != nil {
		return medications.Medication{}, err
	}
	for _, m := range list {
		if m.ID == id {
			return m, nil
		}
	}
	return medications.Medication{}, medications.ErrNotFound
}

func (c *Client) Create(ctx context.Context, in medications.CreateInput) (medications.Medication, error) {
	norm, err := in.Normalize()
	if err != nil {
		return medications.Medication{}, err
	}

	var created wireMedication
	if err := c.http.DoJSON(ctx, http.MethodPost, medicinesPath, toCreateBody(norm), &created); err != nil {
		return medications.Medication{}, fmt.Errorf("create medicine: %w", mapErr(err))
	}
	if created.ID != "" {
		return created.toDomain(), nil
	}

	// El backend solo responde {"message": ...}: el alta es la última fila con ese nombre.
	list, err := c.List(ctx)
	if err != nil {
		return medications.Medication{}, err
	}
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Name == norm.Name {
			return list[i], nil
		}
	}
	return medications.New("", norm), nil
}

func (c *Client) Update(ctx context.Context, id string, in medications.UpdateInput) (medications.Medication, error) {
	current, err := c.Get(ctx, id)
	if err != nil {
		return medications.Medication{}, err
	}
	updated, err := in.Apply(current)
	if err != nil {
		return medications.Medication{}, err
	}

	body := toCreateBody(medications.CreateInput{
		Name:           updated.Name,
		Quantity:       updated.Quantity,
		Unit:           updated.Unit,
		ExpirationDate: updated.ExpirationDate,
		Frequency:      updated.Frequency,
		Notes:          updated.Notes,
	})
	if err := c.http.DoJSON(ctx, http.MethodPatch, itemPath(id), body, nil); err != nil {
		return medications.Medication{}, fmt.Errorf("update medicine %s: %w", id, mapErr(err))
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.http.DoJSON(ctx, http.MethodDelete, itemPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete medicine %s: %w", id, mapErr(err))
	}
	return nil
}

// TakeDose solo llama al backend si queda stock.
func (c *Client) TakeDose(ctx context.Context, id string) (medications.Medication, error) {
	current, err := c.Get(ctx, id)
	if err != nil {
		return medications.Medication{}, err
	}
	if current.Quantity <= 0 {
		return medications.Medication{}, fmt.Errorf("%w: %s", medications.ErrOutOfStock, current.Name)
	}

	if err := c.http.DoJSON(ctx, http.MethodPut, itemPath(id), nil, nil); err != nil {
		return medications.Medication{}, fmt.Errorf("take dose %s: %w", id, mapErr(err))
	}
	current.Quantity--
	return current, nil
}

var _ medications.Source = (*Client)(nil)
