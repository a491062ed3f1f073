package storycache

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultDBPath returns the path to the SQLite DB file for story storage,
// under the XDG data directory.
func DefaultDBPath() string {
	path, err := xdg.DataFile(filepath.Join("foredeck", "stories.db"))
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".foredeck_stories.db"
		}
		return filepath.Join(homeDir, ".foredeck_stories.db")
	}
	return path
}
