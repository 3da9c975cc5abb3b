package api

import (
	"context"
	"fmt"
	"net/http"

	"agrigest/internal/types"
)

// ConseilService is the facade for /conseils/. Advice is read-only
// apart from the mark-read mutation.
type ConseilService struct {
	c *Client
}

// GetAll lists advice. Supported filters: lu (true/false), priorite.
func (s *ConseilService) GetAll(ctx context.Context, filters Filters) ([]types.Conseil, error) {
	return getList[types.Conseil](ctx, s.c, "/conseils/", filters)
}

// MarkRead flags one advice entry as read and returns the updated record.
func (s *ConseilService) MarkRead(ctx context.Context, id int) (*types.Conseil, error) {
	var conseil types.Conseil
	if err := s.c.do(ctx, http.MethodPatch, fmt.Sprintf("/conseils/%d/marquer-lu/", id), nil, &conseil); err != nil {
		return nil, err
	}
	return &conseil, nil
}
