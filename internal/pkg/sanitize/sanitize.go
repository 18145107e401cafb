// Package sanitize scrubs credentials out of strings before they reach logs or API responses.
package sanitize

import (
	"regexp"
)

const redacted = "[REDACTED]"

var (
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-._~+/]+=*`)
	jwtPattern    = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)
	// long opaque runs (api keys, session ids); plain words and numbers never reach 32 chars
	opaquePattern = regexp.MustCompile(`[A-Za-z0-9_\-]{32,}`)
	secretParam   = regexp.MustCompile(`(?i)((?:token|api_key|apikey|password|secret)=)[^&\s"]+`)
)

// String replaces bearer tokens, JWTs, secret query parameters and long opaque strings.
func String(s string) string {
	if s == "" {
		return s
	}
	s = bearerPattern.ReplaceAllString(s, "${1}"+redacted)
	s = jwtPattern.ReplaceAllString(s, redacted)
	s = secretParam.ReplaceAllString(s, "${1}"+redacted)
	s = opaquePattern.ReplaceAllString(s, redacted)
	return s
}

// Error returns the sanitized message of err, or "" for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
