package events

import (
	"net/url"
	"strconv"
	"time"

	"github.com/usernamenul1/sportline/pkg/auth"
)

// Event is a listed sports event.
type Event struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Location        string    `json:"location"`
	EventTime       time.Time `json:"event_time"`
	Capacity        int       `json:"capacity"`
	Price           int       `json:"price"`
	Status          string    `json:"status"`
	CreatorID       int64     `json:"creator_id"`
	CreatedAt       time.Time `json:"created_at"`
	Creator         auth.User `json:"creator"`
	RegisteredCount int       `json:"registered_count"`
}

// CreateRequest carries the fields of a new event.
type CreateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location"`
	EventTime   time.Time `json:"event_time"`
	Capacity    int       `json:"capacity"`
	Price       int       `json:"price"`
}

// UpdateRequest is a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	EventTime   *time.Time `json:"event_time,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	Price       *int       `json:"price,omitempty"`
}

// ListParams filter and paginate the event listing. Zero values are omitted
// from the query, leaving the server defaults (active events, page 1, ten
// per page) in effect.
type ListParams struct {
	Search   string
	DateFrom time.Time
	DateTo   time.Time
	Location string
	Status   string
	Page     int
	Limit    int
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if !p.DateFrom.IsZero() {
		q.Set("date_from", p.DateFrom.Format(time.RFC3339))
	}
	if !p.DateTo.IsZero() {
		q.Set("date_to", p.DateTo.Format(time.RFC3339))
	}
	if p.Location != "" {
		q.Set("location", p.Location)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// Page is one page of the event listing.
type Page struct {
	Items []Event `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
	Pages int     `json:"pages"`
}
