package apify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendstack/prospect-pipeline/internal/resilience"
)

func newTestClient(handler http.HandlerFunc) (Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient("test-token",
		WithBaseURL(srv.URL),
		WithActor("test~actor"),
		WithHTTPClient(srv.Client()),
	)
	return c, srv
}

func TestSearchPlaces_Success(t *testing.T) {
	var gotPath, gotToken string
	var gotReq SearchRequest

	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		items := []PlaceItem{
			{PlaceID: "p1", Title: "Summit HVAC", TotalScore: 4.7, ReviewsCount: 140},
			{PlaceID: "p2", Title: "Boise Plumbing Co", TotalScore: 4.2, ReviewsCount: 55},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(items))
	})
	defer srv.Close()

	items, err := client.SearchPlaces(context.Background(), SearchRequest{
		SearchStringsArray: []string{"hvac company"},
		LocationQuery:      "Boise, ID, USA",
		MaxCrawledPlaces:   50,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Summit HVAC", items[0].Title)
	assert.Equal(t, 140, items[0].ReviewsCount)

	assert.Equal(t, "/acts/test~actor/run-sync-get-dataset-items", gotPath)
	assert.Equal(t, "test-token", gotToken)
	assert.Equal(t, []string{"hvac company"}, gotReq.SearchStringsArray)
	assert.Equal(t, "Boise, ID, USA", gotReq.LocationQuery)
	assert.Equal(t, 50, gotReq.MaxCrawledPlaces)
}

func TestSearchPlaces_CreatedStatusAccepted(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"placeId": "p1", "title": "A"}]`))
	})
	defer srv.Close()

	items, err := client.SearchPlaces(context.Background(), SearchRequest{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSearchPlaces_AuthFailure(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "invalid token"}`))
	})
	defer srv.Close()

	_, err := client.SearchPlaces(context.Background(), SearchRequest{})
	require.Error(t, err)
	assert.Equal(t, resilience.KindAuth, resilience.KindOf(err))
	assert.False(t, resilience.IsTransient(err))
}

func TestSearchPlaces_QuotaFailure(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer srv.Close()

	_, err := client.SearchPlaces(context.Background(), SearchRequest{})
	require.Error(t, err)
	assert.Equal(t, resilience.KindQuota, resilience.KindOf(err))
}

func TestSearchPlaces_ServerError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := client.SearchPlaces(context.Background(), SearchRequest{})
	require.Error(t, err)
	assert.Equal(t, resilience.KindTransient, resilience.KindOf(err))
	assert.True(t, resilience.IsTransient(err))
}

func TestSearchPlaces_MalformedBody(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	defer srv.Close()

	_, err := client.SearchPlaces(context.Background(), SearchRequest{})
	assert.Error(t, err)
}

func TestSearchPlaces_ContextCanceled(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.SearchPlaces(ctx, SearchRequest{})
	assert.Error(t, err)
}
