package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/hsereport/config"
	"github.com/tsawler/hsereport/internal/doctest"
	"github.com/tsawler/hsereport/store"
)

func newTestServer(t *testing.T, password string) *httptest.Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Server.Password = password
	cfg.Database = filepath.Join(t.TempDir(), "test.db")

	st, err := store.Open(cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ts := httptest.NewServer(New(cfg, st, nil).Router())
	t.Cleanup(ts.Close)
	return ts
}

func uploadBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, data := range files {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func reportDOCX(t *testing.T, comment string) []byte {
	return doctest.DOCX(t, [][]string{
		{"Field", "Mereenie", "Palm Valley", "BECGS/Dingo"},
		{"HSE", comment, "Nil", "Nil"},
		{"Production", "10", "20", "30"},
	})
}

func TestHealthz_NoPasswordRequired(t *testing.T) {
	ts := newTestServer(t, "secret")

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_PasswordGate(t *testing.T) {
	ts := newTestServer(t, "secret")

	// No password.
	resp, err := http.Get(ts.URL + "/api/records")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Wrong password.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/records", nil)
	req.Header.Set("X-Password", "wrong")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Bearer form.
	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/api/records", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Header form.
	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/api/records", nil)
	req.Header.Set("X-Password", "secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_EmptyPasswordDisablesGate(t *testing.T) {
	ts := newTestServer(t, "")

	resp, err := http.Get(ts.URL + "/api/records")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExtract_UploadAndList(t *testing.T) {
	ts := newTestServer(t, "")

	body, contentType := uploadBody(t, map[string][]byte{
		"2024-05-01.docx": reportDOCX(t, "Leak reported"),
		"garbage.docx":    []byte("not a zip"),
	})

	resp, err := http.Post(ts.URL+"/api/extract", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var er extractResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&er))

	assert.NotEmpty(t, er.BatchID)
	assert.Equal(t, 2, er.Processed)
	assert.Equal(t, 1, er.Succeeded)
	assert.Equal(t, 1, er.Failed)

	byFile := map[string]extractResult{}
	for _, r := range er.Results {
		byFile[r.File] = r
	}
	good := byFile["2024-05-01.docx"]
	require.True(t, good.OK)
	require.NotNil(t, good.Record)
	assert.Equal(t, "Leak reported", good.Record.Values["Mereenie_HSE"])
	assert.Equal(t, "2024-05-01", good.Record.Date)

	bad := byFile["garbage.docx"]
	assert.False(t, bad.OK)
	assert.NotEmpty(t, bad.Error)
	assert.Nil(t, bad.Record)

	// The successful record was stored and lists newest-first.
	listResp, err := http.Get(ts.URL + "/api/records?limit=10")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var stored []store.StoredRecord
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "2024-05-01.docx", stored[0].File)
}

func TestExtract_NoFiles(t *testing.T) {
	ts := newTestServer(t, "")

	body, contentType := uploadBody(t, nil)
	resp, err := http.Post(ts.URL+"/api/extract", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecords_BadLimit(t *testing.T) {
	ts := newTestServer(t, "")

	resp, err := http.Get(ts.URL + "/api/records?limit=zero")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportXLSX(t *testing.T) {
	ts := newTestServer(t, "")

	body, contentType := uploadBody(t, map[string][]byte{
		"2024-05-01.docx": reportDOCX(t, "Leak reported"),
	})
	resp, err := http.Post(ts.URL+"/api/extract", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()

	dl, err := http.Get(ts.URL + "/api/export.xlsx")
	require.NoError(t, err)
	defer dl.Body.Close()

	assert.Equal(t, http.StatusOK, dl.StatusCode)
	assert.Equal(t, xlsxContentType, dl.Header.Get("Content-Type"))
	assert.Contains(t, dl.Header.Get("Content-Disposition"), "HSE_Summary_IndividualFields.xlsx")
}

func TestExportCSV(t *testing.T) {
	ts := newTestServer(t, "")

	body, contentType := uploadBody(t, map[string][]byte{
		"2024-05-01.docx": reportDOCX(t, "Leak reported"),
	})
	resp, err := http.Post(ts.URL+"/api/extract", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()

	dl, err := http.Get(ts.URL + "/api/export.csv")
	require.NoError(t, err)
	defer dl.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(dl.Body)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "File,Date,Mereenie_HSE")
	assert.Contains(t, buf.String(), "Leak reported")
}
