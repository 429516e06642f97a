package sportline

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/usernamenul1/sportline/pkg/apiclient"
	"github.com/usernamenul1/sportline/pkg/auth"
	"github.com/usernamenul1/sportline/pkg/comments"
	"github.com/usernamenul1/sportline/pkg/events"
	"github.com/usernamenul1/sportline/pkg/orders"
	"github.com/usernamenul1/sportline/pkg/session"
)

// Config holds the environment-provided client settings.
type Config struct {
	BaseURL     string        `env:"SPORTLINE_API_URL" envDefault:"http://localhost:8000"`
	Timeout     time.Duration `env:"SPORTLINE_HTTP_TIMEOUT" envDefault:"10s"`
	SessionFile string        `env:"SPORTLINE_SESSION_FILE"`
}

// Client bundles the wired-up platform client: the session manager, the
// typed resource clients, and the pipeline they all share.
type Client struct {
	API      *apiclient.Client
	Sessions *session.Manager
	Auth     *auth.Client
	Events   *events.Client
	Orders   *orders.Client
	Comments *comments.Client
}

// Option configures the wiring performed by New.
type Option func(*options)

type options struct {
	log        *slog.Logger
	store      session.Store
	httpClient *http.Client
	redirect   func()
	limiter    *rate.Limiter
	metrics    *apiclient.Collector
}

// WithLogger sets the logger shared by the pipeline and the session manager.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithStore replaces the default file-backed session store.
func WithStore(store session.Store) Option {
	return func(o *options) {
		if store != nil {
			o.store = store
		}
	}
}

// WithHTTPClient sets a custom HTTP client for the pipeline.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithRedirect registers the callback invoked when the server rejects the
// session's credential - the view layer's "go to login" entry point. It can
// fire once per rejected in-flight request, so it must tolerate repeats.
func WithRedirect(fn func()) Option {
	return func(o *options) {
		o.redirect = fn
	}
}

// WithRateLimiter throttles outgoing requests.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(o *options) {
		o.limiter = l
	}
}

// WithMetrics records pipeline metrics on the collector.
func WithMetrics(c *apiclient.Collector) Option {
	return func(o *options) {
		o.metrics = c
	}
}

// New wires a complete client: request pipeline with bearer attachment,
// request IDs and unauthorized teardown, a durable session store, the
// session manager, and the typed resource clients.
//
// Call Sessions.Restore once at startup to resolve any persisted session.
func New(cfg Config, opts ...Option) (*Client, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	apiOpts := []apiclient.Option{
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithRequestHook(apiclient.RequestID()),
	}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, apiclient.WithHTTPClient(o.httpClient))
	}
	if o.limiter != nil {
		apiOpts = append(apiOpts, apiclient.WithRateLimiter(o.limiter))
	}
	if o.metrics != nil {
		apiOpts = append(apiOpts, apiclient.WithMetrics(o.metrics))
	}
	if o.log != nil {
		apiOpts = append(apiOpts,
			apiclient.WithRequestHook(apiclient.LogRequests(o.log)),
			apiclient.WithResponseHook(apiclient.LogResponses(o.log)),
		)
	}

	api, err := apiclient.New(cfg.BaseURL, apiOpts...)
	if err != nil {
		return nil, err
	}

	store := o.store
	if store == nil {
		store, err = session.NewFileStore(cfg.SessionFile)
		if err != nil {
			return nil, err
		}
	}

	// The pipeline reads the token straight from the store, exactly like
	// the manager persists it: the login flow's save-token-then-fetch
	// ordering depends on this.
	api.UseRequest(apiclient.BearerAuth(store))

	authClient := auth.NewClient(api)

	var mgrOpts []session.Option
	if o.log != nil {
		mgrOpts = append(mgrOpts, session.WithLogger(o.log))
	}
	manager := session.NewManager(authClient, store, mgrOpts...)

	api.UseResponse(apiclient.UnauthorizedWatch(manager, o.redirect))

	return &Client{
		API:      api,
		Sessions: manager,
		Auth:     authClient,
		Events:   events.NewClient(api),
		Orders:   orders.NewClient(api),
		Comments: comments.NewClient(api),
	}, nil
}
