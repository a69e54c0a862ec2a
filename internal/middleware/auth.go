package middleware

import (
	"crypto/subtle"
	"net/http"
)

// loginPage is the re-authentication prompt shown to browsers that arrive
// without a valid token. Submitting the form re-navigates with ?token=.
const loginPage = `<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Access Token Required</title>
	<style>
		body { font-family: -apple-system, 'Segoe UI', sans-serif; display: flex; align-items: center; justify-content: center; min-height: 100vh; margin: 0; background: #f3f9fd; }
		.box { background: white; padding: 40px; border-radius: 12px; box-shadow: 0 10px 40px rgba(0,0,0,0.1); max-width: 360px; width: 90%; text-align: center; }
		h2 { color: #2c3e50; margin-bottom: 10px; }
		p { color: #7f8c8d; margin-bottom: 20px; }
		input { width: 100%; padding: 12px; border: 1px solid #ddd; border-radius: 6px; font-size: 14px; margin-bottom: 15px; box-sizing: border-box; }
		button { width: 100%; padding: 12px; background: #0078d4; color: white; border: none; border-radius: 6px; font-size: 14px; cursor: pointer; }
		button:hover { background: #0062a3; }
	</style>
</head>
<body>
	<div class="box">
		<h2>&#128274; Access Token Required</h2>
		<p>Enter the access token to continue</p>
		<form method="GET">
			<input type="password" name="token" placeholder="Access token" required autofocus>
			<button type="submit">Continue</button>
		</form>
	</div>
</body>
</html>`

// Auth gates the protected surface behind the configured shared secret,
// carried as a token query parameter on every request. An empty secret means
// the instance is open. Share links never pass through here; their access
// control is the share record itself.
type Auth struct {
	secret string
}

// NewAuth creates the auth gate for the given shared secret.
func NewAuth(secret string) *Auth {
	return &Auth{secret: secret}
}

func (a *Auth) authorized(r *http.Request) bool {
	if a.secret == "" {
		return true
	}
	provided := r.URL.Query().Get("token")
	return subtle.ConstantTimeCompare([]byte(provided), []byte(a.secret)) == 1
}

// Web protects browser-navigable routes. Unauthorized requests get an HTML
// re-authentication prompt.
func (a *Auth) Web(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.authorized(r) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(loginPage))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// API protects machine endpoints. Unauthorized requests get a JSON error.
func (a *Auth) API(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.authorized(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"success":false,"message":"invalid access token"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
