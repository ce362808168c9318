package fs

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePhotoPath finds the file a user meant by raw. Paths pasted from a
// shell or a Windows explorer often carry quotes, backslashes or doubled
// separators; each repair is tried in turn, and finally the bare file name in
// the working directory. Returns the first candidate that exists as a
// regular file, or false when none does.
func ResolvePhotoPath(raw string) (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return resolveIn(raw, cwd)
}

func resolveIn(raw, cwd string) (string, bool) {
	for _, candidate := range pathCandidates(raw, cwd) {
		if isRegularFile(candidate) {
			return candidate, true
		}
	}
	return raw, false
}

func pathCandidates(raw, cwd string) []string {
	candidates := []string{
		raw,
		strings.Trim(raw, "\" "),
		strings.ReplaceAll(raw, `\`, "/"),
		strings.ReplaceAll(raw, `\\`, `\`),
	}
	if cwd != "" {
		name := filepath.Base(strings.ReplaceAll(strings.Trim(raw, "\" "), `\`, "/"))
		if name != "." && name != "/" {
			candidates = append(candidates, filepath.Join(cwd, name))
		}
	}
	return candidates
}

func isRegularFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
