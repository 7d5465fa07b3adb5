package upstream

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MrJigi/mechhive-assignment-app/pkg/config"
	pkgerrors "github.com/MrJigi/mechhive-assignment-app/pkg/errors"
)

func testClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	return NewClient(config.UpstreamConfig{
		BaseURL: "http://catalog.test/v1",
		APIKey:  "test-key",
		Timeout: time.Second,
	}, WithHTTPClient(&http.Client{Transport: rt}))
}

func TestClientGetSendsKeyAndParams(t *testing.T) {
	const expectedURL = "http://catalog.test/v1/products?brands=disney&search=gift"

	var capturedURL string
	var capturedHeaders http.Header

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedHeaders = req.Header.Clone()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"products":[]}`)),
			Header:     http.Header{},
		}, nil
	})

	client := testClient(t, rt)

	params := url.Values{}
	params.Set("search", "gift")
	params.Set("brands", "disney")
	params.Set("regions", "") // empty values must be dropped

	var out map[string]any
	if err := client.Get(context.Background(), "/products", params, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if capturedHeaders.Get("x-api-key") != "test-key" {
		t.Fatalf("api key header missing")
	}
	if _, ok := out["products"]; !ok {
		t.Fatalf("unexpected payload %+v", out)
	}
}

func TestClientGetNotReady(t *testing.T) {
	client := NewClient(config.UpstreamConfig{BaseURL: "http://catalog.test"})
	if client.IsReady() {
		t.Fatalf("client without API key must not be ready")
	}

	var out map[string]any
	err := client.Get(context.Background(), "/products", nil, &out)
	if !pkgerrors.HasCode(err, pkgerrors.CodeConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestClientGetTimeout(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	client := NewClient(config.UpstreamConfig{
		BaseURL: "http://catalog.test",
		APIKey:  "test-key",
		Timeout: 20 * time.Millisecond,
	}, WithHTTPClient(&http.Client{Transport: rt}))

	var out map[string]any
	err := client.Get(context.Background(), "/products", nil, &out)
	if !pkgerrors.HasCode(err, pkgerrors.CodeUpstreamTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestClientGetStatusError(t *testing.T) {
	rt := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusForbidden,
			Body:       io.NopCloser(strings.NewReader(`{"error":"bad key"}`)),
			Header:     http.Header{},
		}, nil
	})

	client := testClient(t, rt)
	var out map[string]any
	err := client.Get(context.Background(), "/products", nil, &out)
	if !pkgerrors.HasCode(err, pkgerrors.CodeUpstreamStatus) {
		t.Fatalf("expected status error, got %v", err)
	}

	details, ok := pkgerrors.As(err).Details().(map[string]any)
	if !ok || details["status"] != http.StatusForbidden {
		t.Fatalf("expected status detail, got %+v", details)
	}
}

func TestClientGetParseErrors(t *testing.T) {
	cases := map[string]string{
		"empty body":       "   ",
		"top-level array":  `[{"name":"x"}]`,
		"top-level scalar": `42`,
		"malformed json":   `{"products":`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rt := roundTripFunc(func(*http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(strings.NewReader(body)),
					Header:     http.Header{},
				}, nil
			})

			client := testClient(t, rt)
			var out map[string]any
			err := client.Get(context.Background(), "/products", nil, &out)
			if !pkgerrors.HasCode(err, pkgerrors.CodeUpstreamParse) {
				t.Fatalf("expected parse error, got %v", err)
			}
		})
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
