// Package httpjson gets JSON documents over HTTP for the quote providers.
package httpjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

// Get performs an HTTP GET of 'addr' with 'client' and decodes the JSON body into 'data'.
//
// Errors name the URL path only, the query may carry an API token.
func Get(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("cannot create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("cannot http GET %s%s: %w", req.URL.Host, req.URL.Path, err)
	}
	defer resp.Body.Close()
	log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("http")

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %s%s: %s", req.URL.Host, req.URL.Path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(data); err != nil {
		return fmt.Errorf("cannot decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}
