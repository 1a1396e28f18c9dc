package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"veridoc/internal/domain"
)

// Client talks to the external document-registry service over HTTP JSON.
// The registry is the durable anchor store; a hash it already holds is
// reported with ErrAlreadyAnchored so callers can re-adopt instead of fail.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string) *Client {
	return NewWithHTTPClient(baseURL, apiKey, &http.Client{Timeout: 10 * time.Second})
}

func NewWithHTTPClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type anchorRequest struct {
	DocumentHash string `json:"document_hash"`
}

type anchorResponse struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber int64  `json:"block_number"`
}

type lookupResponse struct {
	Issuer    string `json:"issuer"`
	Timestamp int64  `json:"timestamp"`
	Status    string `json:"status"`
	Reason    string `json:"reason"`
}

func (c *Client) Anchor(ctx context.Context, documentHash string) (domain.AnchorResult, error) {
	if c == nil || c.baseURL == "" {
		return domain.AnchorResult{}, errors.New("registry base URL missing")
	}
	if documentHash == "" {
		return domain.AnchorResult{}, fmt.Errorf("%w: document hash", domain.ErrMalformedFacts)
	}
	body, err := json.Marshal(anchorRequest{DocumentHash: documentHash})
	if err != nil {
		return domain.AnchorResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/anchors", bytes.NewReader(body))
	if err != nil {
		return domain.AnchorResult{}, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.AnchorResult{}, fmt.Errorf("registry anchor: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.AnchorResult{}, err
	}
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict:
		return domain.AnchorResult{}, fmt.Errorf("%w: %s", domain.ErrAlreadyAnchored, documentHash)
	default:
		return domain.AnchorResult{}, fmt.Errorf("registry anchor failed: status %d", resp.StatusCode)
	}

	var out anchorResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return domain.AnchorResult{}, err
	}
	if out.TxHash == "" {
		return domain.AnchorResult{}, errors.New("registry anchor response missing tx_hash")
	}
	return domain.AnchorResult{
		TxHash:      out.TxHash,
		BlockNumber: out.BlockNumber,
	}, nil
}

func (c *Client) Lookup(ctx context.Context, documentHash string) (domain.LookupResult, error) {
	if c == nil || c.baseURL == "" {
		return domain.LookupResult{}, errors.New("registry base URL missing")
	}
	if documentHash == "" {
		return domain.LookupResult{}, fmt.Errorf("%w: document hash", domain.ErrMalformedFacts)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/anchors/"+documentHash, nil)
	if err != nil {
		return domain.LookupResult{}, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.LookupResult{}, fmt.Errorf("registry lookup: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.LookupResult{}, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		// A miss is an answer, not a failure.
		return domain.LookupResult{}, nil
	default:
		return domain.LookupResult{}, fmt.Errorf("registry lookup failed: status %d", resp.StatusCode)
	}

	var out lookupResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return domain.LookupResult{}, err
	}
	status := out.Status
	if status == "" {
		status = domain.LedgerStatusActive
	}
	return domain.LookupResult{
		Exists:    true,
		Issuer:    out.Issuer,
		Timestamp: out.Timestamp,
		Status:    status,
		Reason:    out.Reason,
	}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
}

var _ domain.LedgerService = (*Client)(nil)
