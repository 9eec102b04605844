package testutil

import (
	"net/http"

	"advocatehub/pkg/requestcontext"
)

// WithRequestID attaches a request ID the way the request ID middleware does.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithClientMetadata attaches client IP and User-Agent the way the client
// metadata middleware does.
func WithClientMetadata(req *http.Request, clientIP, userAgent string) *http.Request {
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), clientIP, userAgent))
}
