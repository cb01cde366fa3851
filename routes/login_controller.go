package routes

import (
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
)

var reRefresh = regexp.MustCompile(`(?i)^refresh\s+(.*)`)

// Login exchanges HTTP basic credentials for an access/refresh token pair.
func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "login.basic_auth")
			return
		}

		body := url.Values{
			"grant_type": {"password"},
			"username":   {user},
			"password":   {pass},
		}.Encode()
		r.Body = io.NopCloser(strings.NewReader(body))
		r.Header.Del("authorization")
		r.Header.Set("content-type", "application/x-www-form-urlencoded")
		r.Header.Set("content-length", strconv.Itoa(len(body)))
		app.UserCredentials(w, r)
	}
}

// Refresh trades an "Authorization: Refresh <token>" header for a new pair.
func Refresh(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match := reRefresh.FindStringSubmatch(r.Header.Get("authorization"))
		if len(match) == 0 {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "refresh.token")
			return
		}

		body := url.Values{
			"grant_type":    {"refresh_token"},
			"refresh_token": {match[1]},
		}.Encode()

		req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, "/", strings.NewReader(body))
		if err != nil {
			httpx.LogInternalError(w, "refresh.new_request", err)
			return
		}
		req.Header.Set("content-type", "application/x-www-form-urlencoded")
		req.Header.Set("content-length", strconv.Itoa(len(body)))

		resp := httpx.NewResponseBuffer()
		app.UserCredentials(resp, req)
		resp.Flush(w)
	}
}
