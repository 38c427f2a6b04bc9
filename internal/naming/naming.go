// Package naming allocates collision-free output paths. The filesystem is
// the source of truth at allocation time; an in-process claim set on top of
// it guarantees that two concurrent conversions are never handed the same
// candidate, even before either has written a byte.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// OutExt is the extension of every produced file.
const OutExt = ".jpg"

// Namer hands out destination paths that neither exist on disk nor are
// claimed by another conversion in this run. All methods are goroutine-safe.
type Namer struct {
	mu      sync.Mutex
	claimed map[string]bool
}

// NewNamer creates a ready-to-use namer.
func NewNamer() *Namer {
	return &Namer{claimed: make(map[string]bool)}
}

// Allocate returns the first free path of dir/base.jpg, dir/base_1.jpg,
// dir/base_2.jpg, … and claims it. Existing files are never targeted. The
// claim holds until [Namer.Release]; callers release only when the write
// failed (a successful write makes the file itself the claim).
func (n *Namer) Allocate(dir, base string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	candidate := filepath.Join(dir, base+OutExt)
	for i := 1; ; i++ {
		if !n.claimed[candidate] && !exists(candidate) {
			n.claimed[candidate] = true
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, OutExt))
	}
}

// Release frees a claimed path after a failed write so the name can be
// reused.
func (n *Namer) Release(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.claimed, path)
}

// exists reports whether path is present. Stat errors other than
// non-existence count as present, which steers allocation away from
// anything questionable.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
