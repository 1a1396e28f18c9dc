package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"veridoc/internal/domain"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func newTestClient(rt roundTripperFunc) *Client {
	return NewWithHTTPClient("http://registry.test", "key-1", &http.Client{Transport: rt})
}

func TestAnchorSuccess(t *testing.T) {
	var gotHash string
	var gotAuth string
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || req.URL.Path != "/api/v1/anchors" {
			t.Fatalf("unexpected request: %s %s", req.Method, req.URL.Path)
		}
		gotAuth = req.Header.Get("Authorization")
		body, _ := io.ReadAll(req.Body)
		var payload anchorRequest
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("invalid anchor request: %v", err)
		}
		gotHash = payload.DocumentHash
		return jsonResponse(http.StatusCreated, `{"tx_hash":"0xtx1","block_number":42}`), nil
	})

	result, err := client.Anchor(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("anchor: %v", err)
	}
	if result.TxHash != "0xtx1" || result.BlockNumber != 42 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if gotHash != "0xabc" {
		t.Fatalf("document hash not sent: %q", gotHash)
	}
	if gotAuth != "Bearer key-1" {
		t.Fatalf("auth header: %q", gotAuth)
	}
}

func TestAnchorConflict(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusConflict, `{"message":"already anchored"}`), nil
	})

	_, err := client.Anchor(context.Background(), "0xabc")
	if !errors.Is(err, domain.ErrAlreadyAnchored) {
		t.Fatalf("expected ErrAlreadyAnchored, got %v", err)
	}
}

func TestAnchorTransportError(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	if _, err := client.Anchor(context.Background(), "0xabc"); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestLookupFound(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodGet || req.URL.Path != "/api/v1/anchors/0xabc" {
			t.Fatalf("unexpected request: %s %s", req.Method, req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"issuer":"Test University","timestamp":1700000000,"status":"active"}`), nil
	})

	result, err := client.Lookup(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !result.Exists {
		t.Fatal("expected exists")
	}
	if result.Issuer != "Test University" || result.Status != domain.LedgerStatusActive {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestLookupMissIsNotAnError(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"message":"not found"}`), nil
	})

	result, err := client.Lookup(context.Background(), "0xmissing")
	if err != nil {
		t.Fatalf("lookup miss must not fail: %v", err)
	}
	if result.Exists {
		t.Fatal("expected miss")
	}
}

func TestLookupDefaultsStatusActive(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"issuer":"x","timestamp":1}`), nil
	})

	result, err := client.Lookup(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if result.Status != domain.LedgerStatusActive {
		t.Fatalf("status = %q", result.Status)
	}
}

func TestLookupServerError(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, `{}`), nil
	})

	if _, err := client.Lookup(context.Background(), "0xabc"); err == nil {
		t.Fatal("expected server error to surface")
	}
}
