package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"uptime-api/internal/apperror"
	"uptime-api/internal/validation"
)

// tokenHeader carries the session token id on authenticated requests.
const tokenHeader = "token"

// parseRequest normalizes an incoming request into the three field maps the
// validation engine consumes. Only the token header is lifted out of the
// header set; ambient HTTP headers are not part of the validated surface.
func parseRequest(r *http.Request) (validation.Request, error) {
	var req validation.Request

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return req, fmt.Errorf("read request body: %w", err)
	}
	if len(strings.TrimSpace(string(body))) > 0 {
		payload := make(map[string]validation.Value)
		if err := json.Unmarshal(body, &payload); err != nil {
			return req, fmt.Errorf("decode request body: %w", apperror.ErrValidation)
		}
		req.Payload = payload
	}

	if q := r.URL.Query(); len(q) > 0 {
		req.Query = make(map[string]validation.Value, len(q))
		for key := range q {
			req.Query[key] = q.Get(key)
		}
	}

	if token := r.Header.Get(tokenHeader); token != "" {
		req.Headers = map[string]validation.Value{tokenHeader: token}
	}

	return req, nil
}

// token returns the session token id presented with the request, if any.
func token(req validation.Request) string {
	id, _ := req.Headers[tokenHeader].(string)
	return id
}

func stringField(m map[string]validation.Value, key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

func boolField(m map[string]validation.Value, key string) (bool, bool) {
	v, ok := m[key].(bool)
	return v, ok
}

func intField(m map[string]validation.Value, key string) (int, bool) {
	f, ok := m[key].(float64)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// intSliceField extracts a JSON array of whole numbers. Any non-integer
// element fails the extraction.
func intSliceField(m map[string]validation.Value, key string) ([]int, bool) {
	raw, ok := m[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(raw))
	for _, e := range raw {
		f, ok := e.(float64)
		if !ok || f != float64(int(f)) {
			return nil, false
		}
		out = append(out, int(f))
	}
	return out, true
}
