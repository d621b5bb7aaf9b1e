package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexPage []byte

// IndexHandler serves the embedded analysis page at the root path.
// Unknown paths fall through to 404 so typos don't silently render the page.
func IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)

		if r.Method != http.MethodHead {
			_, _ = w.Write(indexPage)
		}
	}
}
