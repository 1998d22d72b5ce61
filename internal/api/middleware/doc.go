// Package middleware holds the HTTP middleware shared by every route: trace ID
// propagation with a request-scoped logger, and the CORS policy.
package middleware
