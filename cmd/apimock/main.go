package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
)

// A stand-in for the claims validation API. Import a generated collection,
// set baseUrl to this server, and every request gets a canned verdict.
func main() {
	var validated int64

	mux := http.NewServeMux()

	mux.HandleFunc("/api/validate/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		tcID := strings.TrimPrefix(r.URL.Path, "/api/validate/")
		if tcID == "" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt64(&validated, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tc_id":     tcID,
			"test_type": r.Header.Get("X-Test-Type"),
			"edit_id":   r.Header.Get("X-Edit-ID"),
			"eob_code":  r.Header.Get("X-EOB-Code"),
			"verdict":   "accepted",
		})
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":        true,
			"validated": atomic.LoadInt64(&validated),
		})
	})

	addr := ":8081"
	log.Printf("apimock listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
