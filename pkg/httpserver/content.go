package httpserver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.n16f.net/log"
)

// ContentStore reads response bodies from a directory tree anchored at Root.
// Missing or unreadable files are a soft failure: Load logs them and returns
// empty content, leaving the status decision to the caller.
type ContentStore struct {
	Root string
	Log  *log.Logger
}

func NewContentStore(root string, logger *log.Logger) *ContentStore {
	return &ContentStore{
		Root: root,
		Log:  logger,
	}
}

// Load reads the file at name under baseDir and returns its length and
// content. Name is treated as relative even if it starts with a separator.
// A relative baseDir is resolved against the store root.
//
// A file named return.json is a one-shot response queue: it is truncated
// after a successful read, so a second read before any new write returns
// empty content. Two connections consuming the same queue file at the same
// time can race on the truncation; this is a known limitation.
func (s *ContentStore) Load(name, baseDir string) (int, []byte) {
	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(s.Root, baseDir)
	}

	name = strings.TrimLeft(name, "/")
	filePath := filepath.Join(baseDir, name)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.Log.Info("no content at %q", filePath)
		} else {
			s.Log.Error("cannot read %q: %v", filePath, err)
		}

		return 0, nil
	}

	if filepath.Base(filePath) == "return.json" {
		if err := os.Truncate(filePath, 0); err != nil {
			s.Log.Error("cannot truncate %q: %v", filePath, err)
		}
	}

	s.Log.Debug(1, "serving %q (%d bytes)", filePath, len(data))

	return len(data), data
}
