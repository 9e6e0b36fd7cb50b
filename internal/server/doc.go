// Package server provides the short-lived HTTP server that completes OAuth2 flows for the CLI.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [BasicRouter] uses [http.ServeMux] internally with method filtering; [Logging] records each request.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the authorization code callback. It validates the state parameter (CSRF protection),
// exchanges the code through an [Exchanger] and publishes a single [OAuthResult] on a channel.
// Later callbacks are rejected.
//
// The `auth spotify` and `auth youtube` commands start the server on the configured host and port, open the
// consent page and shut the server down once a result arrives or the flow times out.
package server
