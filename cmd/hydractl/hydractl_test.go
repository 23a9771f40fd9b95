package main

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://hydra@db/hydra", "postgres://hydra@db/hydra?x-migrations-table=hydra_schema_migrations"},
		{"postgres://hydra@db/hydra?sslmode=disable", "postgres://hydra@db/hydra?sslmode=disable&x-migrations-table=hydra_schema_migrations"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, migrationsURL(tt.in))
	}
}

func TestWaitForServer(t *testing.T) {
	t.Run("ready after retries", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		require.NoError(t, waitForServer(srv.URL+"/status", 5, time.Millisecond))
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("never ready", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := waitForServer(srv.URL+"/status", 2, time.Millisecond)
		assert.EqualError(t, err, "not ready after 2 attempts")
	})
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"server"},
		{"db", "migrate"},
		{"db", "down"},
		{"db", "status"},
		{"wait"},
		{"configuration", "show"},
		{"user", "create"},
		{"token", "issue"},
		{"dataset", "values"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
