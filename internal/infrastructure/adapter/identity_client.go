package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/port"
)

// Compile-time interface check.
var _ port.IdentityVerifier = (*IdentityClient)(nil)

// IdentityClient implements port.IdentityVerifier against the national ID
// registry's HTTP API. The provider is treated as unreliable: each call is
// retried with a linear backoff, and an exhausted retry budget surfaces as an
// error so the caller can fall back to the local checksum.
type IdentityClient struct {
	apiKey     string
	baseURL    string
	maxRetries int
	backoff    time.Duration
	client     *http.Client
}

// NewIdentityClient creates a registry client. maxRetries <= 0 defaults to 3.
func NewIdentityClient(apiKey, baseURL string, timeout time.Duration, maxRetries int) *IdentityClient {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &IdentityClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxRetries: maxRetries,
		backoff:    500 * time.Millisecond,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// verifyResponse represents the registry's verification response.
type verifyResponse struct {
	Valid   bool   `json:"valid"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Verify checks a national ID against the registry.
func (c *IdentityClient) Verify(ctx context.Context, nationalID string) (port.VerificationResult, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return port.VerificationResult{}, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * c.backoff):
			}
		}

		result, err := c.verifyOnce(ctx, nationalID)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return port.VerificationResult{}, fmt.Errorf("identity registry unavailable after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *IdentityClient) verifyOnce(ctx context.Context, nationalID string) (port.VerificationResult, error) {
	payload := fmt.Sprintf(`{"national_id": %q}`, nationalID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/verify", strings.NewReader(payload))
	if err != nil {
		return port.VerificationResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return port.VerificationResult{}, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return port.VerificationResult{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return port.VerificationResult{}, fmt.Errorf("registry error (status %d): %s", resp.StatusCode, string(body))
	}

	var result verifyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return port.VerificationResult{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return port.VerificationResult{
		Valid:   result.Valid,
		Status:  result.Status,
		Message: result.Message,
	}, nil
}
