package middleware

import (
	"net/http"
	"time"
)

// RequestObserver records served requests. *metrics.Metrics implements it.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics reports every request to obs, labelled by the matched ServeMux pattern
// so path values do not explode label cardinality.
func Metrics(obs RequestObserver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrap(w)
		next.ServeHTTP(wrapped, r)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		obs.ObserveRequest(r.Method, route, wrapped.status, time.Since(start))
	})
}
