package navigator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/ahmadalnaib/project-board/internal/listing"
	"github.com/ahmadalnaib/project-board/internal/querystate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPDispatcher loads intents from a list API over HTTP.
type HTTPDispatcher struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPDispatcher resolves intent URLs against baseURL, which may carry a
// path prefix. A nil client gets a default with a 15 second timeout.
func NewHTTPDispatcher(baseURL string, client *http.Client) (*HTTPDispatcher, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPDispatcher{base: base, client: client}, nil
}

// resolve places a root-relative reference under the base path, so a base
// of http://host/api turns /projects?page=2 into http://host/api/projects?page=2.
// Any other reference resolves normally.
func (d *HTTPDispatcher) resolve(ref *url.URL) *url.URL {
	if ref.Scheme != "" || ref.Host != "" || !strings.HasPrefix(ref.Path, "/") {
		return d.base.ResolveReference(ref)
	}
	target := *d.base
	target.Path = strings.TrimRight(d.base.Path, "/") + ref.Path
	target.RawPath = ""
	target.RawQuery = ref.RawQuery
	target.Fragment = ""
	return &target
}

// Dispatch implements Dispatcher.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, intent querystate.Intent) (Response, error) {
	ref, err := url.Parse(intent.URL)
	if err != nil {
		return Response{}, fmt.Errorf("invalid intent url %q: %w", intent.URL, err)
	}
	target := d.resolve(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return Response{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope listing.Envelope[jsoniter.RawMessage]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Response{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return Response{
		URL:         intent.URL,
		Data:        envelope.Data,
		Meta:        envelope.Meta,
		QueryParams: envelope.QueryParams,
	}, nil
}
