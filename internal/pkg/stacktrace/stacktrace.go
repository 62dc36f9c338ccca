// Package stacktrace shortens goroutine dumps to this module's own frames.
package stacktrace

import "strings"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" location of every
// frame under an internal/ directory, innermost first. Frames from the
// runtime and dependencies are dropped.
func InternalPaths(stack []byte) []string {
	var paths []string
	for line := range strings.Lines(string(stack)) {
		line = strings.TrimSpace(line)

		// file lines look like "/src/app/internal/x/y.go:42 +0x1d"
		loc, _, _ := strings.Cut(line, " ")
		_, rel, found := strings.Cut(loc, "/internal/")
		if !found || !strings.Contains(rel, ".go:") {
			continue
		}
		paths = append(paths, "internal/"+rel)
	}
	return paths
}
