package shop

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tinshelf/tinshelf/internal/logging"
)

// fileSuffixes is the fixed allow-list of image extensions, matched
// case-sensitively against file names.
var fileSuffixes = []string{".nsp", ".nsz", ".xci", ".xciz"}

// dirResult is one source directory's contribution to a Listing.
type dirResult struct {
	files       []FileEntry
	directories []string
}

// Scan walks every source directory concurrently and assembles the merged
// Listing. Directory order in the output follows the configured order
// regardless of which scan finishes first.
//
// An unreadable source root contributes nothing (logged, not fatal); an
// I/O error deeper inside a walk fails the whole scan, so a Listing is
// never built from a partially scanned directory.
func Scan(dirs []SourceDirectory, successMessage string) (*Listing, error) {
	results := make([]dirResult, len(dirs))

	var g errgroup.Group
	for i, dir := range dirs {
		g.Go(func() error {
			res, err := scanDirectory(dir)
			if err != nil {
				return fmt.Errorf("scan %s: %w", dir.Path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	listing := &Listing{
		Files:       []FileEntry{},
		Directories: []string{},
		Success:     successMessage,
	}
	seenDirs := make(map[string]bool)
	for _, res := range results {
		listing.Files = append(listing.Files, res.files...)
		for _, d := range res.directories {
			if !seenDirs[d] {
				seenDirs[d] = true
				listing.Directories = append(listing.Directories, d)
			}
		}
	}
	return listing, nil
}

// scanDirectory walks one source directory, following symbolic links.
func scanDirectory(dir SourceDirectory) (dirResult, error) {
	res := dirResult{}
	if _, err := os.Stat(dir.Path); err != nil {
		logging.Warn("source directory unreadable, skipping",
			zap.String("path", dir.Path), zap.Error(err))
		return res, nil
	}

	seenDirs := make(map[string]bool)
	err := walk(dir.Path, nil, func(abs string, relSegments []string, size int64) {
		segments := make([]string, 0, len(relSegments)+1)
		segments = append(segments, escapeSegment(dir.Alias))
		for _, seg := range relSegments {
			segments = append(segments, escapeSegment(seg))
		}
		res.files = append(res.files, FileEntry{
			URL:  strings.Join(segments, "/"),
			Size: size,
		})

		parent := strings.Join(segments[:len(segments)-1], "/")
		if !seenDirs[parent] {
			seenDirs[parent] = true
			res.directories = append(res.directories, parent)
		}
	})
	return res, err
}

// walk recursively visits every regular file under root whose name ends in
// one of the allowed suffixes. Symbolic links are followed (os.Stat); an
// entry whose target cannot be stat'ed (e.g. a dangling link) is skipped.
func walk(root string, relSegments []string, visit func(abs string, relSegments []string, size int64)) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		abs := filepath.Join(root, entry.Name())
		info, err := os.Stat(abs)
		if err != nil {
			logging.Debug("skipping unreadable entry",
				zap.String("path", abs), zap.Error(err))
			continue
		}
		if info.IsDir() {
			if err := walk(abs, append(relSegments, entry.Name()), visit); err != nil {
				return err
			}
			continue
		}
		if !info.Mode().IsRegular() || !hasAllowedSuffix(entry.Name()) {
			continue
		}
		visit(abs, append(relSegments, entry.Name()), info.Size())
	}
	return nil
}

func hasAllowedSuffix(name string) bool {
	for _, suffix := range fileSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

const upperhex = "0123456789ABCDEF"

// escapeSegment percent-encodes a single path segment. Everything outside
// the RFC 3986 unreserved set (ALPHA / DIGIT / "-" / "." / "_" / "~") is
// encoded. Stricter than url.PathEscape: spaces, brackets, ampersands and
// friends all become %XX. '/' never appears inside a segment, so
// separators stay literal.
func escapeSegment(seg string) string {
	var b strings.Builder
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
			c == '-' || c == '.' || c == '_' || c == '~' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}
