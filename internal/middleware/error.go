package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// responseRecorder is a custom ResponseWriter that holds back non-JSON error
// responses so the wrapper can rewrite them as JSON
type responseRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	intercepted bool
	body        strings.Builder
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.statusCode = statusCode
	if statusCode >= 400 && !strings.Contains(r.Header().Get("Content-Type"), "application/json") {
		// Do not forward the header yet; the deferred handler rewrites
		// the response once the original body has been captured
		r.intercepted = true
		return
	}
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	if r.intercepted {
		r.body.Write(b)
		return len(b), nil
	}
	return r.ResponseWriter.Write(b)
}

// ErrorHandler is a middleware that logs errors and returns a JSON error
// response. Handlers that already produce JSON errors pass through untouched.
func ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Error: %v", err)
				if !rec.wroteHeader || rec.intercepted {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal Server Error"})
				}
				return
			}
			if rec.intercepted {
				message := strings.TrimSpace(rec.body.String())
				if message == "" {
					message = http.StatusText(rec.statusCode)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(rec.statusCode)
				json.NewEncoder(w).Encode(ErrorResponse{Error: message})
			}
		}()

		next.ServeHTTP(rec, r)
	})
}
