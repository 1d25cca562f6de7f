package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Service is a bookable salon service
type Service struct {
	ID          ID          `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
}

// ListServices returns the service catalog. No credential is needed.
func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	var services []Service
	err := c.do(ctx, request{
		op:     "failed to fetch services",
		method: http.MethodGet,
		path:   "/services",
	}, &services)
	if err != nil {
		return nil, err
	}
	return services, nil
}

// FindService returns the catalog entry with the given id
func FindService(services []Service, id ID) (*Service, error) {
	for i := range services {
		if services[i].ID == id {
			return &services[i], nil
		}
	}
	return nil, fmt.Errorf("service '%s' not found", id)
}

// Review is a customer review of a service
type Review struct {
	ID        ID     `json:"id"`
	ServiceID ID     `json:"service_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	UserName  string `json:"user_name,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ListReviews returns the reviews of a service
func (c *Client) ListReviews(ctx context.Context, serviceID ID) ([]Review, error) {
	var reviews []Review
	err := c.do(ctx, request{
		op:     "failed to fetch reviews",
		method: http.MethodGet,
		path:   fmt.Sprintf("/reviews/%s", url.PathEscape(serviceID.String())),
	}, &reviews)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ReviewRequest represents the review creation request
type ReviewRequest struct {
	ServiceID ID     `json:"service_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=1000"`
}

// CreateReview posts a review for a service
func (c *Client) CreateReview(ctx context.Context, review ReviewRequest) error {
	if err := c.validateRequest("review", review); err != nil {
		return err
	}

	return c.do(ctx, request{
		op:            "failed to submit review",
		method:        http.MethodPost,
		path:          "/reviews",
		body:          review,
		authenticated: true,
	}, nil)
}
