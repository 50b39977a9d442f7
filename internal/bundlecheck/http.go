package bundlecheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/vgsales/internal/domain/types"
)

// client talks to the explorer's JSON API.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// fetched keeps the raw body next to its decoded form so reproducibility can
// be checked byte for byte.
type fetched struct {
	raw    []byte
	bundle types.Bundle
}

// bundle fetches GET /api/bundle for c.
func (cl *client) bundle(ctx context.Context, c Case) (fetched, error) {
	q := url.Values{}
	q.Set("region", c.Region)
	q.Set("count", strconv.Itoa(c.Count))
	q.Set("tab", c.Tab)

	raw, err := cl.do(ctx, http.MethodGet, "/api/bundle?"+q.Encode(), nil)
	if err != nil {
		return fetched{}, err
	}
	var b types.Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return fetched{}, fmt.Errorf("decode bundle %s: %w", c, err)
	}
	return fetched{raw: raw, bundle: b}, nil
}

// stateChange mirrors the POST /api/state body.
type stateChange struct {
	Region      *string `json:"region,omitempty"`
	ResultCount *int    `json:"result_count,omitempty"`
	Tab         *string `json:"tab,omitempty"`
}

// apply posts a state change and returns the recomputed bundle.
func (cl *client) apply(ctx context.Context, change stateChange) (fetched, error) {
	body, err := json.Marshal(change)
	if err != nil {
		return fetched{}, fmt.Errorf("encode state change: %w", err)
	}
	raw, err := cl.do(ctx, http.MethodPost, "/api/state", body)
	if err != nil {
		return fetched{}, err
	}
	var resp struct {
		Bundle json.RawMessage `json:"bundle"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fetched{}, fmt.Errorf("decode state response: %w", err)
	}
	var b types.Bundle
	if err := json.Unmarshal(resp.Bundle, &b); err != nil {
		return fetched{}, fmt.Errorf("decode state bundle: %w", err)
	}
	return fetched{raw: resp.Bundle, bundle: b}, nil
}

// state returns the server's current state.
func (cl *client) state(ctx context.Context) (types.State, error) {
	raw, err := cl.do(ctx, http.MethodGet, "/api/state", nil)
	if err != nil {
		return types.State{}, err
	}
	var resp struct {
		State types.State `json:"state"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return types.State{}, fmt.Errorf("decode state: %w", err)
	}
	return resp.State, nil
}

func (cl *client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, cl.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := cl.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s %s returned %d: %s", ErrUnexpectedStatus, method, path, resp.StatusCode, bytes.TrimSpace(data))
	}
	return data, nil
}
