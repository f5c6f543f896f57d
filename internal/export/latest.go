package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// LatestFile resolves an export glob to the most recently modified match.
// Exports are re-downloaded per run but older snapshots linger next to them.
func LatestFile(glob string) (string, error) {
	matches, err := filepath.Glob(glob)
	if err != nil {
		return "", fmt.Errorf("bad export glob %q: %w", glob, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no export matches %q", glob)
	}

	latest := ""
	var latestMod int64
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		if latest == "" || info.ModTime().UnixNano() > latestMod {
			latest = match
			latestMod = info.ModTime().UnixNano()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no readable export matches %q", glob)
	}
	return latest, nil
}
