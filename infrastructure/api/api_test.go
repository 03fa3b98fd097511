package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affiche-studio/affiche"
	"github.com/affiche-studio/affiche/domain/entity"
	"github.com/affiche-studio/affiche/infrastructure/api"
	"github.com/affiche-studio/affiche/infrastructure/api/v1/dto"
)

func newTestServer(t *testing.T, extra ...affiche.Option) (*httptest.Server, *affiche.Client) {
	t.Helper()

	opts := append([]affiche.Option{
		affiche.WithDataDir(t.TempDir()),
		// Keep the worker idle so queued enrichment never fires mid-test.
		affiche.WithWorkerPollPeriod(time.Hour),
	}, extra...)

	client, err := affiche.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	srv := httptest.NewServer(api.NewAPIServer(client).Handler())
	t.Cleanup(srv.Close)
	return srv, client
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, raw
}

func TestEntityEndpoints(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()

	res, err := client.Resolver.ResolveOrCreate(ctx, entity.KindArtist, "Chéri Hérouard", []string{"Herouard"})
	require.NoError(t, err)
	_, err = client.Resolver.ResolveOrCreate(ctx, entity.KindPrinter, "Imprimerie Chaix", nil)
	require.NoError(t, err)

	resp, raw := doJSON(t, http.MethodGet, srv.URL+"/api/v1/entities?kind=artist", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var list dto.EntityListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Chéri Hérouard", list.Data[0].Name)
	assert.Equal(t, []string{"Herouard"}, list.Data[0].Aliases)
	assert.EqualValues(t, 1, list.Meta.TotalCount)

	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/api/v1/entities/"+itoa(res.Entity.ID()), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var single dto.EntityResponse
	require.NoError(t, json.Unmarshal(raw, &single))
	assert.Equal(t, "artist", single.Data.Kind)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/entities/999999", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/entities?kind=museum", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestItemAttributionEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/api/v1/items",
		dto.ItemCreateRequest{Title: "La Vie Parisienne cover"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var created dto.ItemResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	require.NotEmpty(t, created.Data.PublicID, "missing public_id must be generated")

	resp, raw = doJSON(t, http.MethodPost,
		srv.URL+"/api/v1/items/"+created.Data.PublicID+"/attribution",
		dto.AttributionRequest{
			Artist:     "Chéri Hérouard",
			Publisher:  "La Vie Parisienne",
			ArtistTier: "confirmed",
			Basis:      "visible_signature",
		}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var applied dto.AttributionResponse
	require.NoError(t, json.Unmarshal(raw, &applied))

	artist := applied.Data.Links["artist"]
	require.NotNil(t, artist)
	assert.Equal(t, 95, artist.Score)
	assert.Equal(t, "visible_signature", artist.Basis)
	require.NotNil(t, artist.EntityID)

	publisher := applied.Data.Links["publisher"]
	require.NotNil(t, publisher)
	assert.Equal(t, 70, publisher.Score, "named non-artist fields default to likely")

	// The item is retrievable with its links intact.
	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/api/v1/items/"+created.Data.PublicID, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched dto.ItemResponse
	require.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, artist.EntityID, fetched.Data.Links["artist"].EntityID)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/items",
		dto.ItemCreateRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "title is required")
}

func TestWriteProtection(t *testing.T) {
	srv, client := newTestServer(t, affiche.WithAPIKeys("sekret"))

	_, err := client.Resolver.ResolveOrCreate(context.Background(), entity.KindSeller, "Swann Galleries", nil)
	require.NoError(t, err)

	// Reads stay open.
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/entities", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/queue", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Writes need a key.
	body := dto.ItemCreateRequest{Title: "Poster"}
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/items", body, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/items", body,
		map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/items", body,
		map[string]string{"Authorization": "Bearer sekret"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/items", body,
		map[string]string{"X-API-Key": "sekret"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
