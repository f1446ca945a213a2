package rpc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilmi2809/tubeseai/internal/infrastructure/rpc"
)

func TestCall(t *testing.T) {
	t.Run("decodes the data payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/rpc", r.URL.Path)

			var req rpc.Request
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "getUser", req.Operation)

			var vars map[string]string
			require.NoError(t, json.Unmarshal(req.Variables, &vars))
			assert.Equal(t, "u1", vars["id"])

			_ = json.NewEncoder(w).Encode(rpc.Response{
				Data: json.RawMessage(`{"id":"u1","name":"Ada"}`),
			})
		}))
		defer srv.Close()

		client := rpc.NewClient("user-service", srv.URL)

		var out struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		err := client.Call(context.Background(), "getUser", map[string]string{"id": "u1"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "u1", out.ID)
		assert.Equal(t, "Ada", out.Name)
	})

	t.Run("peer errors become a RemoteError with the wire code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(rpc.Response{
				Errors: []rpc.ErrorMessage{{Message: "user not found", Code: rpc.CodeNotFound}},
			})
		}))
		defer srv.Close()

		client := rpc.NewClient("user-service", srv.URL)
		err := client.Call(context.Background(), "getUser", map[string]string{"id": "ghost"}, nil)

		require.Error(t, err)
		assert.True(t, rpc.HasCode(err, rpc.CodeNotFound))
		assert.False(t, rpc.HasCode(err, rpc.CodeInternal))
		assert.Equal(t, "user not found", err.Error())
	})

	t.Run("non-2xx status is a transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := rpc.NewClient("user-service", srv.URL)
		err := client.Call(context.Background(), "getUser", nil, nil)
		assert.ErrorIs(t, err, rpc.ErrTransport)
	})

	t.Run("unreachable peer is a transport failure", func(t *testing.T) {
		client := rpc.NewClient("user-service", "http://127.0.0.1:1", rpc.WithTimeout(200*time.Millisecond))
		err := client.Call(context.Background(), "getUser", nil, nil)
		assert.ErrorIs(t, err, rpc.ErrTransport)
	})

	t.Run("malformed body is a transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		client := rpc.NewClient("user-service", srv.URL)
		err := client.Call(context.Background(), "getUser", nil, nil)
		assert.ErrorIs(t, err, rpc.ErrTransport)
	})

	t.Run("missing data with a waiting out value is a transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(rpc.Response{})
		}))
		defer srv.Close()

		client := rpc.NewClient("user-service", srv.URL)

		var out map[string]any
		err := client.Call(context.Background(), "getUser", nil, &out)
		assert.ErrorIs(t, err, rpc.ErrTransport)
	})
}
