package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityClient_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the registry verdict", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/verify", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req struct {
				NationalID string `json:"national_id"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "1101700203450", req.NationalID)

			_ = json.NewEncoder(w).Encode(map[string]any{
				"valid": true, "status": "verified", "message": "",
			})
		}))
		defer srv.Close()

		client := NewIdentityClient("test-key", srv.URL, 2*time.Second, 3)
		result, err := client.Verify(ctx, "1101700203450")

		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, "verified", result.Status)
	})

	t.Run("retries transient failures and succeeds", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"valid": false, "status": "revoked", "message": "ID revoked"})
		}))
		defer srv.Close()

		client := NewIdentityClient("test-key", srv.URL, 2*time.Second, 3)
		result, err := client.Verify(ctx, "1101700203450")

		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, "revoked", result.Status)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("exhausted retries surface an error", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewIdentityClient("test-key", srv.URL, 2*time.Second, 3)
		_, err := client.Verify(ctx, "1101700203450")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "after 3 attempts")
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("cancelled context stops the retry loop", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		client := NewIdentityClient("test-key", srv.URL, 2*time.Second, 3)
		_, err := client.Verify(cancelled, "1101700203450")
		require.Error(t, err)
	})
}
