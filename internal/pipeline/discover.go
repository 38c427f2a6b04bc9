package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discovered is the classified result of scanning the input arguments.
type Discovered struct {
	Files      []string // Deduplicated canonical paths of input files, sorted.
	Missing    []string // Arguments that do not exist.
	NotInput   []string // Directly named files without the input extension.
	Unreadable []string // Directories that could not be listed.
}

// Discover classifies paths into the work queue. Directories are scanned
// non-recursively for files with ext (case-insensitive); files are accepted
// when they carry ext and rejected into NotInput otherwise. No paths means
// the current directory. Duplicate arguments, or a file named both directly
// and via its directory, yield one queue entry (canonical-path dedup).
// Every per-path problem is reported in the result; none aborts discovery.
func Discover(paths []string, ext string) Discovered {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var d Discovered
	seen := make(map[string]bool)
	add := func(path string) {
		c := canonical(path)
		if !seen[c] {
			seen[c] = true
			d.Files = append(d.Files, c)
		}
	}

	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			d.Missing = append(d.Missing, p)
			continue
		}
		if !fi.IsDir() {
			if fi.Mode().IsRegular() && hasExt(p, ext) {
				add(p)
			} else {
				d.NotInput = append(d.NotInput, p)
			}
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			d.Unreadable = append(d.Unreadable, p)
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !hasExt(e.Name(), ext) {
				continue
			}
			if info, err := e.Info(); err != nil || !info.Mode().IsRegular() {
				continue
			}
			add(filepath.Join(p, e.Name()))
		}
	}

	sort.Strings(d.Files)
	return d
}

// hasExt matches the file extension case-insensitively.
func hasExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

// canonical returns the absolute, symlink-resolved form of path so the same
// file discovered through different spellings dedups to one queue entry.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
