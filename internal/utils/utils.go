package utils

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pohpos/solana-credit-score/internal/constants"
)

// ResolvePath converts a path that might contain ~ to an absolute path
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is empty")
	}

	// Handle ~ at the start of the path
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	return absPath, nil
}

// IsValidURL checks the string parses as a url with a scheme and host
func IsValidURL(urlIn string) bool {
	parsedURL, err := url.Parse(urlIn)
	if err != nil {
		return false
	}
	return parsedURL.Scheme != "" && parsedURL.Host != ""
}

// ValidateCluster validates that the cluster is a valid cluster
func ValidateCluster(cluster string) (err error) {
	_, ok := constants.SolanaClusters[cluster]
	if !ok {
		return fmt.Errorf("invalid cluster: %s, must be one of: %s", cluster, strings.Join(constants.SolanaClusterNames, ", "))
	}
	return nil
}
