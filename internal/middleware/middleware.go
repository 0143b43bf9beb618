// Package middleware holds the HTTP middleware stack: request
// correlation, request-scoped logging, tracing, rate limiting, and the
// global error funnel that turns every error into the API's payload
// shape.
package middleware
