package auth

import (
	"context"
	"errors"
	"net/url"

	"github.com/usernamenul1/sportline/pkg/apiclient"
)

// ErrEmptyToken indicates the server accepted the credentials but returned
// no access token.
var ErrEmptyToken = errors.New("auth: server returned an empty access token")

// Client issues authentication calls through the request pipeline.
type Client struct {
	api *apiclient.Client
}

// NewClient creates an auth client on top of the given pipeline.
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// Login exchanges a username and password for a bearer token. The token
// endpoint is form-encoded, unlike the rest of the API.
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}

	var token Token
	if err := c.api.PostForm(ctx, "/auth/login", form, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, ErrEmptyToken
	}
	return &token, nil
}

// Register creates a new account. It has no session side effect; callers are
// expected to log in separately afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.api.Post(ctx, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me fetches the profile of the user owning the current bearer credential.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.api.Get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
