package client

import (
	"context"
	"net/http"
)

// Favorite is a service the user marked as a favorite
type Favorite struct {
	ID          ID     `json:"id"`
	ServiceID   ID     `json:"service_id"`
	ServiceName string `json:"service_name"`
}

// FavoriteRequest identifies the service to add or remove
type FavoriteRequest struct {
	ServiceID ID `json:"service_id" validate:"required"`
}

// ListFavorites returns the caller's favorites
func (c *Client) ListFavorites(ctx context.Context) ([]Favorite, error) {
	var favorites []Favorite
	err := c.do(ctx, request{
		op:            "failed to fetch favorites",
		method:        http.MethodGet,
		path:          "/favorites",
		authenticated: true,
	}, &favorites)
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddFavorite marks a service as a favorite
func (c *Client) AddFavorite(ctx context.Context, serviceID ID) error {
	reqBody := FavoriteRequest{ServiceID: serviceID}
	if err := c.validateRequest("favorite", reqBody); err != nil {
		return err
	}

	return c.do(ctx, request{
		op:            "failed to add favorite",
		method:        http.MethodPost,
		path:          "/favorites",
		body:          reqBody,
		authenticated: true,
	}, nil)
}

// RemoveFavorite unmarks a service. The collaborator takes the service id
// in the request body.
func (c *Client) RemoveFavorite(ctx context.Context, serviceID ID) error {
	reqBody := FavoriteRequest{ServiceID: serviceID}
	if err := c.validateRequest("favorite", reqBody); err != nil {
		return err
	}

	return c.do(ctx, request{
		op:            "failed to remove favorite",
		method:        http.MethodDelete,
		path:          "/favorites",
		body:          reqBody,
		authenticated: true,
	}, nil)
}
