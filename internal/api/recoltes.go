package api

import (
	"context"
	"fmt"
	"net/http"

	"agrigest/internal/types"
)

// RecolteService is the facade for /recoltes/.
type RecolteService struct {
	c *Client
}

// GetAll lists harvests. Supported filters: culture, date_debut, date_fin.
func (s *RecolteService) GetAll(ctx context.Context, filters Filters) ([]types.Recolte, error) {
	return getList[types.Recolte](ctx, s.c, "/recoltes/", filters)
}

// GetByID fetches one harvest.
func (s *RecolteService) GetByID(ctx context.Context, id int) (*types.Recolte, error) {
	var recolte types.Recolte
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("/recoltes/%d/", id), nil, &recolte); err != nil {
		return nil, err
	}
	return &recolte, nil
}

// Create registers a new harvest.
func (s *RecolteService) Create(ctx context.Context, recolte types.Recolte) (*types.Recolte, error) {
	var created types.Recolte
	if err := s.c.do(ctx, http.MethodPost, "/recoltes/", recolte, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update patches an existing harvest.
func (s *RecolteService) Update(ctx context.Context, id int, recolte types.Recolte) (*types.Recolte, error) {
	var updated types.Recolte
	if err := s.c.do(ctx, http.MethodPatch, fmt.Sprintf("/recoltes/%d/", id), recolte, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a harvest.
func (s *RecolteService) Delete(ctx context.Context, id int) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/recoltes/%d/", id), nil, nil)
}
