package routes

import (
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func formIdParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
