package bypass

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// TestServerAssetURL verifies the release URL for every architecture.
func TestServerAssetURL(t *testing.T) {
	tests := []struct {
		arch Architecture
		url  string
	}{
		{ArchARM64, "https://github.com/frida/frida/releases/download/16.5.9/frida-server-16.5.9-android-arm64.xz"},
		{ArchARM, "https://github.com/frida/frida/releases/download/16.5.9/frida-server-16.5.9-android-arm.xz"},
		{ArchX86, "https://github.com/frida/frida/releases/download/16.5.9/frida-server-16.5.9-android-x86.xz"},
		{ArchX86_64, "https://github.com/frida/frida/releases/download/16.5.9/frida-server-16.5.9-android-x86_64.xz"},
	}

	for _, tt := range tests {
		t.Run(tt.arch.String(), func(t *testing.T) {
			assert.Equal(t, tt.url, serverAssetURL("16.5.9", tt.arch))
		})
	}
}

// TestFetchServer verifies that the asset is decompressed while downloading.
func TestFetchServer(t *testing.T) {
	content := []byte("not really a server binary")

	// Compress fixture
	var buf bytes.Buffer

	writer, err := xz.NewWriter(&buf)
	require.NoError(t, err)

	_, err = writer.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	// Serve fixture
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(buf.Bytes())
	}))

	defer server.Close()

	// Fetch and compare
	path := filepath.Join(t.TempDir(), "frida-server")

	err = fetchServer(server.URL, path)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

// TestFetchServerNotFound verifies that a missing asset surfaces as an error.
func TestFetchServerNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	defer server.Close()

	err := fetchServer(server.URL, filepath.Join(t.TempDir(), "frida-server"))
	assert.Error(t, err)
}
