package handlers

import (
	"net/http"
	"strconv"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// queryInt parses an integer query parameter; missing or malformed values return def.
func queryInt(r *http.Request, name string, def int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
