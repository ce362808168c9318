package fs

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IgnoreFileName lists patterns a photo import skips. The patterns apply to
// the directory holding the file and everything below it.
const IgnoreFileName = ".vjignore"

// ignoreRule is one parsed pattern line.
//
//	*.xmp       basename glob, any depth below base
//	edits/*.jpg glob on the path below base (any '/' anchors the pattern)
//	/cover.jpg  anchored to base
//	raw/        directories only
//	!keep.jpg   re-include something an earlier rule skipped
type ignoreRule struct {
	base     string // slash path of the declaring directory, "" for the import root
	glob     string
	anchored bool
	dirOnly  bool
	negate   bool
}

func parseRule(base, line string) (ignoreRule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return ignoreRule{}, false
	}
	r := ignoreRule{base: base}
	if strings.HasPrefix(line, "!") {
		r.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		r.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		r.anchored = true
		line = strings.TrimLeft(line, "/")
	}
	if line == "" {
		return ignoreRule{}, false
	}
	if _, err := path.Match(line, ""); err != nil {
		return ignoreRule{}, false
	}
	r.glob = line
	r.anchored = r.anchored || strings.Contains(line, "/")
	return r, true
}

func (r ignoreRule) matches(rel string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}
	sub := rel
	if r.base != "" {
		if !strings.HasPrefix(rel, r.base+"/") {
			return false
		}
		sub = rel[len(r.base)+1:]
	}
	if !r.anchored {
		sub = path.Base(sub)
	}
	ok, _ := path.Match(r.glob, sub)
	return ok
}

// ImportFilter decides which files under an import root become photos: known
// image types that no ignore rule skips. Rules come from config and from the
// .vjignore files met while walking. Later rules win, so a nested .vjignore
// overrides its parents.
type ImportFilter struct {
	root  string
	rules []ignoreRule
}

// NewImportFilter creates a filter for root with the configured patterns.
// The ignore files themselves are always skipped.
func NewImportFilter(root string, patterns []string) *ImportFilter {
	f := &ImportFilter{root: root}
	f.add("", append([]string{IgnoreFileName}, patterns...))
	return f
}

func (f *ImportFilter) add(base string, lines []string) {
	for _, line := range lines {
		if r, ok := parseRule(base, line); ok {
			f.rules = append(f.rules, r)
		}
	}
}

// LoadDir adds the rules of the .vjignore in dir, given relative to the root
// ("" is the root itself). A directory without one adds nothing.
func (f *ImportFilter) LoadDir(dir string) error {
	base := filepath.ToSlash(dir)
	if base == "." {
		base = ""
	}
	lines, err := readIgnoreFile(filepath.Join(f.root, dir, IgnoreFileName))
	if err != nil {
		return err
	}
	f.add(base, lines)
	return nil
}

// Skip reports whether the entry at rel (relative to the root) is excluded.
func (f *ImportFilter) Skip(rel string, isDir bool) bool {
	rel = filepath.ToSlash(rel)
	skip := false
	for _, r := range f.rules {
		if r.matches(rel, isDir) {
			skip = !r.negate
		}
	}
	return skip
}

// Accept reports whether the file at rel is imported.
func (f *ImportFilter) Accept(rel string) bool {
	return IsImage(rel) && !f.Skip(rel, false)
}

// readIgnoreFile returns the raw lines of an ignore file, or nil when there
// is none.
func readIgnoreFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}
