// Package resources holds the typed access modules for each REST resource.
// Every call is a single attempt; errors from the api package propagate
// unchanged.
package resources

import (
	"errors"
	"net/url"
	"strings"
)

// ErrMissingID is returned when a create succeeds without the backend
// echoing the new record's id.
var ErrMissingID = errors.New("server response carries no id")

func pathID(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}

// withQuery appends only the non-empty params to endpoint.
func withQuery(endpoint string, params map[string]string) string {
	q := url.Values{}
	for key, v := range params {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(key, v)
		}
	}
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}
