package httpapi

import (
	"net/http"
	"net/url"
	"strings"
)

// GetQueryParam looks a key up in the raw query string with a case-insensitive
// name compare. The first match wins when a key repeats; tokens that fail URL
// decoding are skipped rather than failing the request; an absent key is "".
func GetQueryParam(r *http.Request, key string) string {
	for _, pair := range strings.Split(r.URL.RawQuery, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		decodedKey, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(decodedKey), key) {
			continue
		}

		decodedValue, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		return decodedValue
	}

	return ""
}
