// Package remote implements the HTTP client of the bets service: session
// login, the paginated bets collection and the per-user configuration.
package remote

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const sessionFile = "btb-session"

func sessionPath() string { return filepath.Join(os.TempDir(), sessionFile) }

// SaveToken stores the session token for later runs.
func SaveToken(token string) error {
	return os.WriteFile(sessionPath(), []byte(token+"\n"), 0600)
}

// LoadToken returns the stored session token.
func LoadToken() (string, error) {
	data, err := os.ReadFile(sessionPath())
	if err != nil {
		return "", fmt.Errorf("session not found. Please run 'btb login' first: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ClearToken forgets the stored session.
func ClearToken() error {
	err := os.Remove(sessionPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
