// Package apiclient implements the HTTP request pipeline every outbound call
// to the Sportline platform API passes through.
//
// Cross-cutting behavior is expressed as explicit, ordered hooks rather than
// hidden transport wrappers: request hooks run before the request is sent
// (bearer credential attachment, request IDs, rate limiting, logging) and
// response hooks run after a response is received (unauthorized teardown,
// logging). Hooks are registered in a deterministic order through UseRequest
// and UseResponse.
//
// The pipeline distinguishes three failure classes: transport failures
// (ErrTransport, ErrTimeout) where no server response was received, server
// errors (*APIError carrying the status and the server's detail message),
// and decoding failures. An unauthorized response additionally triggers the
// UnauthorizedWatch hook when registered, which clears the local session and
// invokes the application's redirect callback - a global, unconditional
// reaction independent of which caller issued the request.
//
// # Usage
//
//	client, err := apiclient.New("http://localhost:8000",
//	    apiclient.WithTimeout(10*time.Second),
//	    apiclient.WithRequestHook(apiclient.RequestID()),
//	)
//	if err != nil {
//	    // handle error
//	}
//	client.UseRequest(apiclient.BearerAuth(store))
//	client.UseResponse(apiclient.UnauthorizedWatch(sessions, func() {
//	    // send the user to the login view
//	}))
//
//	var page events.Page
//	err = client.Get(ctx, "/events/", url.Values{"page": {"1"}}, &page)
package apiclient
