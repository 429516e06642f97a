package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/usernamenul1/sportline/pkg/apiclient"
	"github.com/usernamenul1/sportline/pkg/events"
)

// Order is a user's registration for an event.
type Order struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	EventID   int64        `json:"event_id"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	Event     events.Event `json:"event"`
}

// Client issues order calls through the request pipeline.
type Client struct {
	api *apiclient.Client
}

// NewClient creates an orders client on top of the given pipeline.
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// Place registers the current user for an event, creating an order. The
// server rejects events that are full, inactive or already in the past.
func (c *Client) Place(ctx context.Context, eventID int64) (*Order, error) {
	var order Order
	if err := c.api.Post(ctx, fmt.Sprintf("/events/%d/register", eventID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Mine lists the current user's orders.
func (c *Client) Mine(ctx context.Context) ([]Order, error) {
	var list []Order
	if err := c.api.Get(ctx, "/orders/", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get fetches one of the current user's orders.
func (c *Client) Get(ctx context.Context, id int64) (*Order, error) {
	var order Order
	if err := c.api.Get(ctx, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Cancel cancels an active order.
func (c *Client) Cancel(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("/orders/%d", id))
}
