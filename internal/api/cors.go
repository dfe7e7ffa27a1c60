package api

import "net/http"

// corsGate attaches CORS headers to every response and short-circuits
// preflight OPTIONS requests. Origins on the allow list are echoed back
// exactly. Any other origin falls back to a wildcard allow unless strict
// mode is on — a known-loose default kept for compatibility with direct
// access; strict mode omits the allow header instead, letting the browser
// reject the response.
func corsGate(allowed []string, strict bool) func(http.Handler) http.Handler {
	allowSet := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		allowSet[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, x-chat-session-id")
			h.Set("Access-Control-Max-Age", "86400")

			origin := r.Header.Get("Origin")
			switch {
			case allowSet[origin]:
				h.Set("Access-Control-Allow-Origin", origin)
			case !strict:
				h.Set("Access-Control-Allow-Origin", "*")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
