package server

import (
	"net/http"
	"strings"

	"github.com/localrank/insight-server/pkg/localrank"
)

// ResolveCredential picks the credential for one request. Priority order:
// Authorization bearer token, Authorization Api-Key scheme, X-Api-Key
// header, then the process-wide fallback key. The zero credential means
// the caller supplied nothing; tool invocation reports that as a
// missing_credentials envelope rather than an HTTP fault.
func ResolveCredential(r *http.Request, fallbackKey string) localrank.Credential {
	if auth := strings.TrimSpace(r.Header.Get("Authorization")); auth != "" {
		if token, ok := cutScheme(auth, "Bearer"); ok {
			return localrank.BearerCredential(token)
		}
		if key, ok := cutScheme(auth, "Api-Key"); ok {
			return localrank.APIKeyCredential(key)
		}
	}
	if key := strings.TrimSpace(r.Header.Get("X-Api-Key")); key != "" {
		return localrank.APIKeyCredential(key)
	}
	if fallbackKey != "" {
		return localrank.APIKeyCredential(fallbackKey)
	}
	return localrank.Credential{}
}

// cutScheme splits "Scheme token" case-insensitively on the scheme name.
func cutScheme(header, scheme string) (string, bool) {
	if len(header) <= len(scheme) {
		return "", false
	}
	if !strings.EqualFold(header[:len(scheme)], scheme) || header[len(scheme)] != ' ' {
		return "", false
	}
	token := strings.TrimSpace(header[len(scheme)+1:])
	return token, token != ""
}
