// Package sportline is a Go client for the Sportline sports-event platform
// API: browsing and publishing events, registering for them, commenting, and
// managing the account profile.
//
// The package wires three layers together:
//
//   - a request pipeline (pkg/apiclient) every outbound call passes through,
//     with explicit hooks for bearer credentials, request IDs, logging, rate
//     limiting and the global unauthorized teardown
//   - a durable local session (pkg/session): token plus cached profile,
//     owned by a single-writer manager modelled as an explicit state machine
//   - typed resource clients (pkg/auth, pkg/events, pkg/orders,
//     pkg/comments) issuing the actual REST calls
//
// Basic Usage:
//
//	var cfg sportline.Config
//	config.MustLoad(&cfg)
//
//	client, err := sportline.New(cfg,
//	    sportline.WithLogger(logger.New(logger.WithDevelopment("sportline"))),
//	    sportline.WithRedirect(showLoginView),
//	)
//	if err != nil {
//	    // handle error
//	}
//
//	client.Sessions.Restore(ctx)
//
//	if result := client.Sessions.Login(ctx, username, password); !result.Success {
//	    fmt.Println(result.Message)
//	}
//
//	page, err := client.Events.List(ctx, events.ListParams{Search: "marathon"})
package sportline
