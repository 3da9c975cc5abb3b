package api

import (
	"context"
	"fmt"
	"net/http"

	"agrigest/internal/types"
)

// DepenseService is the facade for /depenses/.
type DepenseService struct {
	c *Client
}

// GetAll lists expenses. Supported filters: categorie, culture,
// date_debut, date_fin.
func (s *DepenseService) GetAll(ctx context.Context, filters Filters) ([]types.Depense, error) {
	return getList[types.Depense](ctx, s.c, "/depenses/", filters)
}

// GetByID fetches one expense.
func (s *DepenseService) GetByID(ctx context.Context, id int) (*types.Depense, error) {
	var depense types.Depense
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/depenses/%d/", id), nil, &depense); err != nil {
		return nil, err
	}
	return &depense, nil
}

// Create registers a new expense.
func (s *DepenseService) Create(ctx context.Context, depense types.Depense) (*types.Depense, error) {
	var created types.Depense
	if err := s.c.do(ctx, http.MethodPost, "/depenses/", depense, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update patches an existing expense.
func (s *DepenseService) Update(ctx context.Context, id int, depense types.Depense) (*types.Depense, error) {
	var updated types.Depense
	if err := s.c.do(ctx, http.MethodPatch, fmt.Sprintf("/depenses/%d/", id), depense, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an expense.
func (s *DepenseService) Delete(ctx context.Context, id int) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/depenses/%d/", id), nil, nil)
}
