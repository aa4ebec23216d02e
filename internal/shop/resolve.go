package shop

import (
	"os"
	"strings"
)

// ResolvedFile is the physical file a virtual path points at. Size is
// captured at resolution time so the HTTP layer can compute ranges
// before opening the file for streaming.
type ResolvedFile struct {
	AbsolutePath string
	Size         int64
}

// Resolve maps a URL-decoded virtual path ("alias/sub/dir/file.nsp") to a
// physical file under one of the configured source directories.
//
// Any path containing ".", "..", or whitespace-only segments is refused
// with the same negative outcome as a missing file, so a client cannot
// tell a blocked traversal apart from a genuine 404.
func Resolve(virtualPath string, dirs []SourceDirectory) (ResolvedFile, bool) {
	segments := splitVirtualPath(virtualPath)
	if len(segments) == 0 {
		return ResolvedFile{}, false
	}
	for _, seg := range segments {
		if seg == "." || seg == ".." || strings.TrimSpace(seg) == "" {
			return ResolvedFile{}, false
		}
	}

	alias := segments[0]
	for _, dir := range dirs {
		if dir.Alias != alias {
			continue
		}
		abs := dir.Path
		if rel := strings.Join(segments[1:], "/"); rel != "" {
			abs = strings.TrimSuffix(abs, "/") + "/" + rel
		}
		info, err := os.Stat(abs)
		if err != nil || info.IsDir() {
			return ResolvedFile{}, false
		}
		return ResolvedFile{AbsolutePath: abs, Size: info.Size()}, true
	}
	return ResolvedFile{}, false
}

// splitVirtualPath splits on '/' and drops empty segments, collapsing
// doubled and trailing slashes.
func splitVirtualPath(p string) []string {
	var segments []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
