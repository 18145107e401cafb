//go:build unit || e2e

package testutil

import (
	"fmt"
	"net/url"
)

// Query encodes a DtoMap result as a URL query string with a leading "?".
func Query(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range m {
		values.Set(k, fmt.Sprint(v))
	}
	return "?" + values.Encode()
}
