package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
)

// imageExtensions are the file types a directory import picks up.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".heic": true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImage reports whether path has a known image extension.
func IsImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// FindImages lists the image files under dir in lexical order. Files skipped
// by ignore or by a .vjignore on the way down are left out, and a skipped
// directory is not descended into.
func FindImages(dir string, recursive bool, ignore []string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	filter := NewImportFilter(dir, ignore)
	if err := filter.LoadDir(""); err != nil {
		return nil, err
	}

	var images []string
	err = filepath.WalkDir(dir, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", p, err)
		}
		if d.IsDir() {
			if !recursive || filter.Skip(rel, true) {
				return filepath.SkipDir
			}
			return filter.LoadDir(rel)
		}
		if d.Type().IsRegular() && filter.Accept(rel) {
			images = append(images, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}
	return images, nil
}
