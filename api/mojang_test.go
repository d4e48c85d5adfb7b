package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/packsmith/packsmith/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersionManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"latest": {"release": "1.21.1", "snapshot": "24w40a"},
			"versions": [
				{"id": "24w40a", "type": "snapshot", "url": "https://example/24w40a.json"},
				{"id": "1.21.1", "type": "release", "url": "https://example/1.21.1.json"},
				{"id": "1.21", "type": "release", "url": "https://example/1.21.json"}
			]
		}`))
	}))
	defer srv.Close()
	defer func(url string) { MANIFEST_URL = url }(MANIFEST_URL)
	MANIFEST_URL = srv.URL

	entries, err := GetVersionManifest()
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, util.ManifestEntry{Id: "24w40a", Type: "snapshot"}, entries[0])
	assert.Equal(t, util.ManifestEntry{Id: "1.21.1", Type: "release"}, entries[1])
}

func TestGetVersionManifestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	defer func(url string) { MANIFEST_URL = url }(MANIFEST_URL)
	MANIFEST_URL = srv.URL

	_, err := GetVersionManifest()
	var fetchErr *util.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "version manifest", fetchErr.Source)
}

func TestPackFormatLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// raw.githubusercontent.com never sends a JSON content type; the
		// index must still decode.
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(`[
			{"id": "1.21.1", "type": "release", "resource_pack_version": 34},
			{"id": "1.20.6", "type": "release", "resource_pack_version": 32},
			{"id": "b1.7.3", "type": "release", "resource_pack_version": null}
		]`))
	}))
	defer srv.Close()
	defer func(url string) { MCMETA_URL = url }(MCMETA_URL)
	MCMETA_URL = srv.URL

	formats, err := GetPackFormats()
	require.NoError(t, err)

	pf, err := formats.Lookup("1.21.1")
	require.NoError(t, err)
	assert.Equal(t, 34, pf)

	_, err = formats.Lookup("b1.7.3")
	var lookupErr *util.LookupError
	require.ErrorAs(t, err, &lookupErr, "versions without pack format data must fail lookup")

	_, err = formats.Lookup("1.8.9")
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "1.8.9", lookupErr.Version)
}

func TestVersionSourceFetchesIndexOnce(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(`[{"id": "1.21.1", "type": "release", "resource_pack_version": 34}]`))
	}))
	defer srv.Close()
	defer func(url string) { MCMETA_URL = url }(MCMETA_URL)
	MCMETA_URL = srv.URL

	src := &VersionSource{}
	for i := 0; i < 3; i++ {
		pf, err := src.PackFormat("1.21.1")
		require.NoError(t, err)
		assert.Equal(t, 34, pf)
	}
	assert.Equal(t, 1, fetches)
}
