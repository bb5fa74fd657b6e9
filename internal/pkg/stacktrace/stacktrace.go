// Package stacktrace trims raw goroutine stacks down to this module's frames.
package stacktrace

import "strings"

const internalMarker = "/internal/"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" frames of a
// debug.Stack() dump, in call order. Frames outside the module are skipped.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines)/2)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, ".go:")
		if idx == -1 || !strings.Contains(line[:idx], internalMarker) {
			continue
		}

		frame, _, _ := strings.Cut(line, " ")
		frame = frame[strings.Index(frame, internalMarker)+1:]
		paths = append(paths, frame)
	}

	return paths
}
