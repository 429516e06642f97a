package comments

import (
	"context"
	"fmt"
	"time"

	"github.com/usernamenul1/sportline/pkg/apiclient"
	"github.com/usernamenul1/sportline/pkg/auth"
)

// Comment is a user comment on an event.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	EventID   int64     `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
	User      auth.User `json:"user"`
}

// CreateRequest carries a new comment.
type CreateRequest struct {
	EventID int64  `json:"event_id"`
	Content string `json:"content"`
}

// Client issues comment calls through the request pipeline.
type Client struct {
	api *apiclient.Client
}

// NewClient creates a comments client on top of the given pipeline.
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// Create posts a comment on an event.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*Comment, error) {
	var comment Comment
	if err := c.api.Post(ctx, "/comments/", req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ForEvent lists all comments on an event. No credential is required.
func (c *Client) ForEvent(ctx context.Context, eventID int64) ([]Comment, error) {
	var list []Comment
	if err := c.api.Get(ctx, fmt.Sprintf("/comments/events/%d", eventID), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes a comment the current user authored.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("/comments/%d", id))
}
