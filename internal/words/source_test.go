package words

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFetch(t *testing.T) {
	srv, hits := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`["HELLO","World","toolong","abc"]`))
	})

	list, err := NewSource(srv.URL, time.Second, 0).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "world"}, list)
	assert.EqualValues(t, 1, hits.Load())
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		target  error
	}{
		{
			name: "bad status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			target: ErrBadStatus,
		},
		{
			name: "empty list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
			target: ErrEmptyList,
		},
		{
			name: "no usable words",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`["a","bb","123456"]`))
			},
			target: ErrEmptyList,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := serve(t, tt.handler)
			_, err := NewSource(srv.URL, time.Second, 0).Fetch(context.Background())
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		srv, _ := serve(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"words":`))
		})
		_, err := NewSource(srv.URL, time.Second, 0).Fetch(context.Background())
		assert.Error(t, err)
	})
}

func TestResolveNetwork(t *testing.T) {
	srv, hits := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["Crane"]`))
	})

	res, err := NewSource(srv.URL, time.Second, 1).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "crane", res.Word)
	assert.Equal(t, OriginNetwork, res.Origin)
	assert.Equal(t, 1, res.Candidates)
	assert.EqualValues(t, 1, hits.Load(), "exactly one request on success")
}

func TestResolveRetriesOnceThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv, _ := serve(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`["slate"]`))
	})

	res, err := NewSource(srv.URL, time.Second, 1).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "slate", res.Word)
	assert.Equal(t, OriginNetwork, res.Origin)
	assert.EqualValues(t, 2, calls.Load())
}

func TestResolveFallsBack(t *testing.T) {
	srv, hits := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	src := NewSource(srv.URL, time.Second, 1)
	src.Fallback = func() []string { return []string{"TRACE"} }

	res, err := src.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "trace", res.Word)
	assert.Equal(t, OriginFallback, res.Origin)
	assert.ErrorIs(t, res.Err, ErrBadStatus)
	assert.EqualValues(t, 2, hits.Load(), "first attempt plus one retry")
}

func TestResolveNoFallback(t *testing.T) {
	srv, _ := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	src := NewSource(srv.URL, time.Second, 0)
	src.Fallback = func() []string { return nil }

	_, err := src.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestResolveTimeout(t *testing.T) {
	release := make(chan struct{})
	srv, _ := serve(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	src := NewSource(srv.URL, 50*time.Millisecond, 0)
	src.Fallback = func() []string { return []string{"hello"} }

	start := time.Now()
	res, err := src.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OriginFallback, res.Origin)
	assert.Less(t, time.Since(start), 5*time.Second)
}
