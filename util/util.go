package util

import (
	"os"

	"golang.org/x/exp/constraints"
)

// EnsureDir creates a directory (and parents) if it does not exist.
// Used at startup for the tunes/static layout; a failure here means
// the process cannot do anything useful.
func EnsureDir(path string) {
	if err := os.MkdirAll(path, 0777); err != nil {
		panic("Could not create directory " + path + ": " + err.Error())
	}
}

// FileExists reports whether path exists and is a regular file with
// content. Renderer availability probes and output checks both want
// "present and non-empty", not just "present".
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
