package api

import (
	"context"
	"fmt"
	"net/http"

	"agrigest/internal/types"
)

// CultureService is the facade for /cultures/.
type CultureService struct {
	c *Client
}

// GetAll lists cultures. Supported filters: zone, date_debut, date_fin.
func (s *CultureService) GetAll(ctx context.Context, filters Filters) ([]types.Culture, error) {
	return getList[types.Culture](ctx, s.c, "/cultures/", filters)
}

// GetByID fetches one culture.
func (s *CultureService) GetByID(ctx context.Context, id int) (*types.Culture, error) {
	var culture types.Culture
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/cultures/%d/", id), nil, &culture); err != nil {
		return nil, err
	}
	return &culture, nil
}

// Create registers a new culture and returns the stored record.
func (s *CultureService) Create(ctx context.Context, culture types.Culture) (*types.Culture, error) {
	var created types.Culture
	if err := s.c.do(ctx, http.MethodPost, "/cultures/", culture, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update patches an existing culture.
func (s *CultureService) Update(ctx context.Context, id int, culture types.Culture) (*types.Culture, error) {
	var updated types.Culture
	if err := s.c.do(ctx, http.MethodPatch, fmt.Sprintf("/cultures/%d/", id), culture, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a culture.
func (s *CultureService) Delete(ctx context.Context, id int) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/cultures/%d/", id), nil, nil)
}

// Options fetches the lightweight id/name list for select inputs.
func (s *CultureService) Options(ctx context.Context) ([]types.CultureOption, error) {
	return getList[types.CultureOption](ctx, s.c, "/cultures/options/", nil)
}
