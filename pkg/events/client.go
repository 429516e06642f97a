package events

import (
	"context"
	"fmt"

	"github.com/usernamenul1/sportline/pkg/apiclient"
)

// Client issues event calls through the request pipeline.
type Client struct {
	api *apiclient.Client
}

// NewClient creates an events client on top of the given pipeline.
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// List fetches one page of events matching params.
func (c *Client) List(ctx context.Context, params ListParams) (*Page, error) {
	var page Page
	if err := c.api.Get(ctx, "/events/", params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single event.
func (c *Client) Get(ctx context.Context, id int64) (*Event, error) {
	var event Event
	if err := c.api.Get(ctx, fmt.Sprintf("/events/%d", id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create publishes a new event owned by the current user.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*Event, error) {
	var event Event
	if err := c.api.Post(ctx, "/events/", req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Update applies a partial update to an event the current user created.
func (c *Client) Update(ctx context.Context, id int64, req UpdateRequest) (*Event, error) {
	var event Event
	if err := c.api.Put(ctx, fmt.Sprintf("/events/%d", id), req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Delete removes an event the current user created.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("/events/%d", id))
}

// Mine lists the events created by the current user.
func (c *Client) Mine(ctx context.Context) ([]Event, error) {
	var list []Event
	if err := c.api.Get(ctx, "/events/my", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
