package sensorthings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrFetch = errors.New("sensorthings request failed")

//Client retrieves entities from a SensorThings API endpoint
type Client struct {
	baseURL    string
	httpClient http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

//Get requests path with an already escaped query string and decodes the JSON
//response into result. Any transport failure, non-2xx status or malformed body
//is reported as ErrFetch.
func (c *Client) Get(ctx context.Context, path, rawQuery string, result any) error {
	logger := logging.GetFromContext(ctx)

	requestURL := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if rawQuery != "" {
		requestURL = requestURL + "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrFetch, err)
	}

	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to send request: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrFetch, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		reqbytes, _ := httputil.DumpRequest(req, false)
		respbytes, _ := httputil.DumpResponse(resp, false)

		logger.Error().Str("request", string(reqbytes)).Str("response", string(respbytes)).Msg("request failed")
		return fmt.Errorf("%w: %s returned status code %d", ErrFetch, path, resp.StatusCode)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		contentType := resp.Header.Get("Content-Type")
		return fmt.Errorf("%w: unexpected status code %d (content-type: %s)", ErrFetch, resp.StatusCode, contentType)
	}

	err = json.Unmarshal(respBody, result)
	if err != nil {
		return fmt.Errorf("%w: failed to unmarshal response: %w", ErrFetch, err)
	}

	return nil
}
