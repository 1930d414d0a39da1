package queries

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/client/cache"
)

type fixture struct {
	queries *Queries
	store   *cache.Store
	poller  *cache.Poller
	mux     *http.ServeMux
	hits    map[string]*atomic.Int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		mux:  http.NewServeMux(),
		hits: make(map[string]*atomic.Int64),
	}
	srv := httptest.NewServer(f.mux)
	t.Cleanup(srv.Close)

	f.store = cache.New(time.Minute)
	f.poller = cache.NewPoller()
	t.Cleanup(f.poller.StopAll)
	f.queries = New(api.New(srv.URL, nil), f.store, f.poller)
	return f
}

// respond registers a handler that counts hits and writes body.
func (f *fixture) respond(pattern, body string) *atomic.Int64 {
	counter := &atomic.Int64{}
	f.hits[pattern] = counter
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)
		fmt.Fprint(w, body)
	})
	return counter
}

func TestQueries_ListReadIsCached(t *testing.T) {
	f := newFixture(t)
	hits := f.respond("/api/v1/participants", `{"entities":[{"id":"p1"}],"total":1}`)
	ctx := context.Background()

	params := api.ParticipantListParams{Status: "active"}
	for i := 0; i < 3; i++ {
		list, err := f.queries.Participants(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, "p1", list.Items[0].ID)
	}
	assert.Equal(t, int64(1), hits.Load(), "repeat reads with equal params share one fetch")
}

func TestQueries_DistinctParamsDistinctSlots(t *testing.T) {
	f := newFixture(t)
	hits := f.respond("/api/v1/providers", `{"entities":[],"total":0}`)
	ctx := context.Background()

	_, err := f.queries.Providers(ctx, api.ProviderListParams{Status: "active"})
	require.NoError(t, err)
	_, err = f.queries.Providers(ctx, api.ProviderListParams{Status: "archived"})
	require.NoError(t, err)

	assert.Equal(t, int64(2), hits.Load())
}

func TestQueries_CreateInvalidatesLists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	listHits := &atomic.Int64{}
	f.mux.HandleFunc("/api/v1/participants", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"id":"p9","first_name":"New"}`)
			return
		}
		listHits.Add(1)
		fmt.Fprint(w, `{"entities":[],"total":0}`)
	})

	params := api.ParticipantListParams{}
	_, err := f.queries.Participants(ctx, params)
	require.NoError(t, err)
	require.Equal(t, int64(1), listHits.Load())

	created, err := f.queries.CreateParticipant(ctx, api.CreateParticipantRequest{FirstName: "New"})
	require.NoError(t, err)

	// Every participant list key is stale now: the next read refetches.
	_, err = f.queries.Participants(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), listHits.Load())

	// The created record's detail reads back without a server round trip.
	got, err := f.queries.Participant(ctx, "p9")
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestQueries_UpdateRefreshesDetailWithoutRefetch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	detailHits := &atomic.Int64{}
	f.mux.HandleFunc("/api/v1/plans/pl1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			fmt.Fprint(w, `{"id":"pl1","status":"expired"}`)
			return
		}
		detailHits.Add(1)
		fmt.Fprint(w, `{"id":"pl1","status":"active"}`)
	})

	p, err := f.queries.Plan(ctx, "pl1")
	require.NoError(t, err)
	assert.Equal(t, "active", p.Status)

	updated, err := f.queries.UpdatePlan(ctx, "pl1", api.UpdatePlanRequest{})
	require.NoError(t, err)
	assert.Equal(t, "expired", updated.Status)

	p, err = f.queries.Plan(ctx, "pl1")
	require.NoError(t, err)
	assert.Equal(t, "expired", p.Status, "detail reflects the mutation result")
	assert.Equal(t, int64(1), detailHits.Load(), "no extra GET after the update")
}

func TestQueries_DeleteRemovesDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mux.HandleFunc("/api/v1/coordinators/c1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		fmt.Fprint(w, `{"id":"c1"}`)
	})

	_, err := f.queries.Coordinator(ctx, "c1")
	require.NoError(t, err)

	require.NoError(t, f.queries.DeleteCoordinator(ctx, "c1"))

	_, ok := f.store.Previous(CoordinatorDetail("c1"))
	assert.False(t, ok, "deleted detail is dropped, not just staled")
}

func TestQueries_WatchDocumentsTerminalListDoesNotPoll(t *testing.T) {
	f := newFixture(t)
	hits := f.respond("/api/v1/documents",
		`{"entities":[{"id":"d1","status":"completed"},{"id":"d2","status":"failed"}],"total":2}`)

	params := api.DocumentListParams{Status: ""}
	var updates int
	err := f.queries.WatchDocuments(context.Background(), params, func(*api.List[api.Document]) {
		updates++
	})
	require.NoError(t, err)

	assert.Equal(t, 1, updates)
	assert.Equal(t, int64(1), hits.Load())
	assert.False(t, f.poller.Active(DocumentList(params)), "all-terminal payload schedules no refetch")
}

func TestQueries_WatchDocumentsPendingKeepsPolling(t *testing.T) {
	f := newFixture(t)
	f.respond("/api/v1/documents",
		`{"entities":[{"id":"d1","status":"pending"}],"total":1}`)

	params := api.DocumentListParams{Status: "pending"}
	err := f.queries.WatchDocuments(context.Background(), params, nil)
	require.NoError(t, err)

	assert.True(t, f.poller.Active(DocumentList(params)), "non-terminal payload arms the poll timer")
	f.poller.Stop(DocumentList(params))
}

func TestQueries_WatchDocumentTerminal(t *testing.T) {
	f := newFixture(t)
	f.respond("/api/v1/documents/d1", `{"id":"d1","status":"failed","validation_summary":"ABN mismatch"}`)

	var got *api.Document
	err := f.queries.WatchDocument(context.Background(), "d1", func(d *api.Document) { got = d })
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "ABN mismatch", got.ValidationSummary)
	assert.False(t, f.poller.Active(DocumentDetail("d1")))
}

func TestQueries_ResetStopsPollingAndDropsCache(t *testing.T) {
	f := newFixture(t)
	f.respond("/api/v1/documents", `{"entities":[{"id":"d1","status":"processing"}],"total":1}`)
	hits := f.respond("/api/v1/dashboard/summary", `{"participants":3}`)

	ctx := context.Background()
	params := api.DocumentListParams{}
	require.NoError(t, f.queries.WatchDocuments(ctx, params, nil))
	_, err := f.queries.Dashboard(ctx)
	require.NoError(t, err)

	f.queries.Reset()

	assert.False(t, f.poller.Active(DocumentList(params)))
	_, err = f.queries.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load(), "cache does not survive a reset")
}
