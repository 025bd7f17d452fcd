package middleware

import (
	"fmt"
	"net/http"

	"github.com/mssola/useragent"

	"ekoshield/pkg/requestcontext"
)

// Device parses the client User-Agent into a compact "browser/os" tag for
// audit events. Unknown agents pass through as the raw header value.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("User-Agent")
		device := raw
		if raw != "" {
			ua := useragent.New(raw)
			name, version := ua.Browser()
			if name != "" {
				device = fmt.Sprintf("%s %s/%s", name, version, ua.OS())
			}
		}
		ctx := requestcontext.WithDevice(r.Context(), device)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
