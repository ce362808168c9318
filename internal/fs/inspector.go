package fs

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"vj-go/internal/journal"
)

// ErrPhotoNotFound is returned by PhotoInspector when no repair of the raw
// path points at an existing file.
var ErrPhotoNotFound = errors.New("photo file not found")

// PhotoInspector reads capture dates from image files on the local disk.
// The EXIF original timestamp is preferred; files without readable EXIF
// data fall back to their modification time.
type PhotoInspector struct {
	logger journal.Logger
}

var _ journal.MetadataExtractor = (*PhotoInspector)(nil)

// NewPhotoInspector creates a PhotoInspector. logger may be nil.
func NewPhotoInspector(logger journal.Logger) *PhotoInspector {
	if logger == nil {
		logger = journal.NewNopLogger()
	}
	return &PhotoInspector{logger: logger}
}

func (p *PhotoInspector) Extract(rawPath string) (journal.PhotoMetadata, error) {
	path, ok := ResolvePhotoPath(rawPath)
	if !ok {
		return journal.PhotoMetadata{}, fmt.Errorf("%s: %w", rawPath, ErrPhotoNotFound)
	}
	if path != rawPath {
		p.logger.Debug("photo path repaired", "raw", rawPath, "path", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return journal.PhotoMetadata{}, fmt.Errorf("stat photo: %w", err)
	}
	meta := journal.PhotoMetadata{Path: path, CaptureDate: info.ModTime()}

	taken, err := exifDateTime(path)
	if err != nil {
		p.logger.Debug("no exif capture time, using file time", "path", path, "error", err)
		return meta, nil
	}
	meta.CaptureDate = taken
	return meta, nil
}

func exifDateTime(path string) (t time.Time, err error) {
	f, err := os.Open(path)
	if err != nil {
		return t, fmt.Errorf("opening photo: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return t, fmt.Errorf("decoding exif: %w", err)
	}
	t, err = x.DateTime()
	if err != nil {
		return t, fmt.Errorf("reading exif date: %w", err)
	}
	return t, nil
}
