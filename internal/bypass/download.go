package bypass

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
)

// serverAssetURL returns the release URL of the frida-server asset for the
// given version and device architecture.
func serverAssetURL(version string, arch Architecture) string {
	return fmt.Sprintf(
		"https://github.com/frida/frida/releases/download/%s/frida-server-%s-%s.xz",
		version, version, arch.AssetTag(),
	)
}

// downloadServer downloads the frida-server binary for the given version and
// architecture into a temporary directory and returns its path. The caller is
// responsible for removing the directory.
func downloadServer(version string, arch Architecture) (string, error) {
	// Create temporary directory
	dir, err := os.MkdirTemp("", "atropos-*")
	if err != nil {
		return "", fmt.Errorf("create temporary directory: %w", err)
	}

	// Fetch and decompress asset
	path := filepath.Join(dir, "frida-server")

	err = fetchServer(serverAssetURL(version, arch), path)
	if err != nil {
		os.RemoveAll(dir) //nolint
		return "", err
	}

	return path, nil
}

// fetchServer fetches the xz-compressed server asset from the given URL and
// writes the decompressed binary to the given path.
func fetchServer(url string, path string) error {
	// Fetch asset
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("fetch server asset: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch server asset: unexpected status [%s]", resp.Status)
	}

	// Decompress while downloading
	reader, err := xz.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("decompress server asset: %w", err)
	}

	// Write binary
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create server binary: %w", err)
	}

	defer file.Close()

	_, err = io.Copy(file, reader)
	if err != nil {
		return fmt.Errorf("write server binary: %w", err)
	}

	return nil
}
