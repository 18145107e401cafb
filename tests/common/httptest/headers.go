//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertHeaders compares response headers; an expected value of "*" only requires presence.
func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		got := w.Header().Get(k)
		if v == "*" {
			assert.NotEmpty(t, got, "header %s missing", k)
			continue
		}
		assert.Equal(t, v, got, "header %s mismatch", k)
	}
}

func AssertJSON(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"),
		"unexpected content type %q", w.Header().Get("Content-Type"))
}
