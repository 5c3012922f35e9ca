package asenax

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	t.Run("parses symbol codes out of the payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":"0","data":[{"kod":"THYAO"},{"kod":"GARAN"},{"kod":""}]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		symbols, err := client.List()
		require.NoError(t, err)
		require.Equal(t, []string{"THYAO", "GARAN"}, symbols)
	})

	t.Run("non-zero code is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":"1","data":[]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.List()
		require.Error(t, err)
	})

	t.Run("empty data is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":"0","data":[]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.List()
		require.Error(t, err)
	})

	t.Run("http error status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.List()
		require.Error(t, err)
	})
}
