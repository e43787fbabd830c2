package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// GenerateFilename produces a collision-resistant storage name from a
// user-supplied original name: the base name keeps its extension and gains a
// millisecond timestamp plus 8 random bytes. This is deliberately not a
// content hash; the goal is collision avoidance and rough chronological
// sortability, not deduplication. Every stored object gets a fresh generated
// name; callers must not supply their own, or concurrent writes to the same
// name become possible.
func GenerateFilename(originalName string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	if base == "" {
		base = "file"
	}

	buf := make([]byte, 8)
	rand.Read(buf)

	return fmt.Sprintf("%s-%d-%s%s", base, time.Now().UnixMilli(), hex.EncodeToString(buf), ext)
}
