package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Somethings1/fintrack-sub000/internal/api"
	"github.com/Somethings1/fintrack-sub000/internal/model"
)

// newStreamServer serves a fixed NDJSON body on the get-since route, checking
// that the checkpoint arrives as RFC3339.
func newStreamServer(t *testing.T, col model.Collection, body string) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get(fmt.Sprintf("/api/%s/get-since/{since}", col), func(w http.ResponseWriter, req *http.Request) {
		since := chi.URLParam(req, "since")
		if _, err := time.Parse(time.RFC3339, since); err != nil {
			t.Errorf("since is not RFC3339: %q", since)
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = io.WriteString(w, body)
	})
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func TestFetchSince_CommitsEveryStreamedRecord(t *testing.T) {
	c := newTestCollections(t)
	body := `{"_id":"a1","name":"Cash","balance":12.5,"lastUpdate":"2025-07-01T10:00:00Z"}` + "\n" +
		"\n" + // blank lines are tolerated
		`{"_id":"a2","name":"Bank","balance":100,"isDeleted":true,"lastUpdate":"2025-07-01T11:00:00Z"}` + "\n"
	ts := newStreamServer(t, model.Accounts, body)

	client := api.New(ts.URL, &stubSession{token: "tok"})
	n, err := FetchSince(context.Background(), client, model.Accounts, time.Unix(0, 0), c.Accounts, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := c.Accounts.GetByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "Cash", got.Name)
	assert.Equal(t, 12.5, got.Balance)

	// tombstones are stored, not skipped
	gone, err := c.Accounts.GetByID(context.Background(), "a2")
	require.NoError(t, err)
	assert.True(t, gone.Deleted())
}

func TestFetchSince_ReingestingIsIdempotent(t *testing.T) {
	c := newTestCollections(t)
	body := `{"_id":"a1","name":"Cash","balance":1}` + "\n"
	ts := newStreamServer(t, model.Accounts, body)
	client := api.New(ts.URL, &stubSession{token: "tok"})

	for i := 0; i < 2; i++ {
		_, err := FetchSince(context.Background(), client, model.Accounts, time.Unix(0, 0), c.Accounts, zap.NewNop().Sugar())
		require.NoError(t, err)
	}
	all, err := c.Accounts.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1, "same record streamed twice must not duplicate")
}

func TestFetchSince_DropsMalformedLinesButKeepsGoing(t *testing.T) {
	c := newTestCollections(t)
	body := `{"_id":"a1","name":"Cash"}` + "\n" +
		`{"this is": not json` + "\n" +
		`{"_id":"a2","name":"Bank"}` + "\n" +
		`{"_id":"a3","name":"Trunc` // cut mid-record, no trailing newline
	ts := newStreamServer(t, model.Accounts, body)
	client := api.New(ts.URL, &stubSession{token: "tok"})

	n, err := FetchSince(context.Background(), client, model.Accounts, time.Unix(0, 0), c.Accounts, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Equal(t, 2, n, "only the intact records commit")

	_, err = c.Accounts.GetByID(context.Background(), "a3")
	assert.Error(t, err, "the truncated record must not be committed")
}

func TestFetchSince_ServerErrorCommitsNothing(t *testing.T) {
	c := newTestCollections(t)
	r := chi.NewRouter()
	r.Get("/api/accounts/get-since/{since}", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "db down", http.StatusInternalServerError)
	})
	ts := httptest.NewServer(r)
	defer ts.Close()
	client := api.New(ts.URL, &stubSession{token: "tok"})

	n, err := FetchSince(context.Background(), client, model.Accounts, time.Unix(0, 0), c.Accounts, zap.NewNop().Sugar())
	assert.Equal(t, 0, n)
	var se *api.StatusError
	require.True(t, errors.As(err, &se))
	assert.True(t, se.Unavailable())

	all, _ := c.Accounts.GetAll(context.Background())
	assert.Empty(t, all)
}

func TestFetchSince_SendsCheckpointInPath(t *testing.T) {
	c := newTestCollections(t)
	since := time.Date(2025, 7, 1, 10, 30, 0, 0, time.UTC)
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
	}))
	defer ts.Close()
	client := api.New(ts.URL, &stubSession{token: "tok"})

	_, err := FetchSince(context.Background(), client, model.Transactions, since, c.Transactions, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(gotPath, "/api/transactions/get-since/2025-07-01T10:30:00Z"), gotPath)
}
