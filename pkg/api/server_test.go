//nolint:errcheck //ok for this test code
package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/trackday-instructions/pkg/document"
	"github.com/mpapenbr/trackday-instructions/pkg/model"
	"github.com/mpapenbr/trackday-instructions/pkg/service"
	"github.com/mpapenbr/trackday-instructions/testsupport/basedata"
	"github.com/mpapenbr/trackday-instructions/testsupport/testdb"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	pool := testdb.InitTestDb(t)
	tracks := service.NewTrackService(pool)
	instructions := service.NewInstructionService(pool, tracks, document.NewRenderer())
	ts := httptest.NewServer(NewServer(tracks, instructions).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, payload)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts := setupTestServer(t)
	var got map[string]string
	resp := doJSON(t, http.MethodGet, ts.URL+"/health", nil, &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", got["status"])
}

func TestTrackEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	var created model.DbTrack
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/tracks",
		basedata.SampleTrack(), &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.False(t, created.ID.IsNil())

	var all []model.DbTrack
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/tracks", nil, &all)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, all, 1)

	var patched model.DbTrack
	resp = doJSON(t, http.MethodPatch, ts.URL+"/api/tracks/"+created.ID.String(),
		map[string]any{"noiseLimit": 102}, &patched)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 102, patched.Data.NoiseLimit)
	assert.Equal(t, "Bilster Berg", patched.Data.Name)

	var dup model.DbTrack
	resp = doJSON(t, http.MethodPost,
		ts.URL+"/api/tracks/"+created.ID.String()+"/duplicate", nil, &dup)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Bilster Berg (Copy)", dup.Data.Name)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/tracks/"+created.ID.String(),
		nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/tracks/"+created.ID.String(),
		nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/tracks/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInstructionEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	var track model.DbTrack
	doJSON(t, http.MethodPost, ts.URL+"/api/tracks", basedata.SampleTrack(), &track)

	var created model.DbInstruction
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/instructions",
		basedata.SampleInstruction(track.ID.String()), &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var byTrack []model.DbInstruction
	resp = doJSON(t, http.MethodGet,
		ts.URL+"/api/tracks/"+track.ID.String()+"/instructions", nil, &byTrack)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, byTrack, 1)

	// editing mode pads empty sequences
	var editing model.DbInstruction
	doJSON(t, http.MethodGet,
		ts.URL+"/api/instructions/"+created.ID.String()+"?editing=true", nil, &editing)
	assert.NotEmpty(t, editing.Data.Notes)
	assert.NotEmpty(t, editing.Data.Warnings)

	var doc document.Document
	resp = doJSON(t, http.MethodGet,
		ts.URL+"/api/instructions/"+created.ID.String()+"/document", nil, &doc)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bilster Berg", doc.Header.TrackName)
	assert.Len(t, doc.Pages, 2)
}

func TestPreviewEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	var track model.DbTrack
	doJSON(t, http.MethodPost, ts.URL+"/api/tracks", basedata.SampleTrack(), &track)
	var created model.DbInstruction
	doJSON(t, http.MethodPost, ts.URL+"/api/instructions",
		basedata.SampleInstruction(track.ID.String()), &created)

	resp, err := http.Get(ts.URL + "/preview/" + created.ID.String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "<!DOCTYPE html>")
	assert.Contains(t, string(body), "Bilster Berg")

	resp, err = http.Get(ts.URL + "/preview?instruction=" + created.ID.String())
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Bilster Berg")

	resp, err = http.Get(ts.URL + "/preview/" + created.ID.String() + "/inline")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), "<!DOCTYPE html>")
	assert.Contains(t, string(body), "Bilster Berg")
}

func TestExportEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	var track model.DbTrack
	doJSON(t, http.MethodPost, ts.URL+"/api/tracks", basedata.SampleTrack(), &track)
	var created model.DbInstruction
	doJSON(t, http.MethodPost, ts.URL+"/api/instructions",
		basedata.SampleInstruction(track.ID.String()), &created)

	base := ts.URL + "/api/instructions/" + created.ID.String() + "/export"

	resp, err := http.Get(base)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "2", resp.Header.Get("X-Page-Count"))
	assert.True(t, strings.Contains(string(body), "<svg"))

	resp, err = http.Get(base + "?format=png&page=2")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))

	resp, err = http.Get(base + "?format=gif")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(base + "?page=99")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminUI(t *testing.T) {
	ts := setupTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Trackday Instructions")
}
