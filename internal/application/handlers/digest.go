package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ersonp/campaign-memory/internal/domain/services"
)

// digestDatePattern matches session digest filenames like 2024-03-01.md.
var digestDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DigestHandler handles folding session digests into the campaign memory.
type DigestHandler struct {
	memory *services.MemoryService
}

// NewDigestHandler creates a new digest handler.
func NewDigestHandler(memory *services.MemoryService) *DigestHandler {
	return &DigestHandler{
		memory: memory,
	}
}

// Handle reads a session digest file and applies it to the given articles
// (all articles when slugs is empty). When sessionDate is zero it is taken
// from the digest filename, which is expected to be the session's
// YYYY-MM-DD date.
func (h *DigestHandler) Handle(ctx context.Context, digestPath string, slugs []string, sessionDate time.Time) (*services.DigestResult, error) {
	if sessionDate.IsZero() {
		parsed, err := SessionDateFromFilename(digestPath)
		if err != nil {
			return nil, err
		}
		sessionDate = parsed
	}

	digest, err := os.ReadFile(digestPath)
	if err != nil {
		return nil, fmt.Errorf("reading digest: %w", err)
	}

	return h.memory.ApplyDigest(ctx, slugs, string(digest), sessionDate)
}

// SessionDateFromFilename extracts the session date from a digest filename
// like transcripts/digests/2024-03-01.md.
func SessionDateFromFilename(path string) (time.Time, error) {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	if !digestDatePattern.MatchString(name) {
		return time.Time{}, fmt.Errorf("cannot infer session date from filename %q: expected YYYY-MM-DD, or pass a date explicitly", filepath.Base(path))
	}

	parsed, err := time.ParseInLocation("2006-01-02", name, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot infer session date from filename %q: %w", filepath.Base(path), err)
	}
	return parsed, nil
}
