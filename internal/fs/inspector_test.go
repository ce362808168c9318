package fs

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// tiffWithDateTime builds a minimal little-endian TIFF whose first IFD holds
// a single DateTime tag.
func tiffWithDateTime(stamp string) []byte {
	value := append([]byte(stamp), 0)
	buf := []byte{'I', 'I', 0x2A, 0x00}
	buf = binary.LittleEndian.AppendUint32(buf, 8)
	buf = binary.LittleEndian.AppendUint16(buf, 1)      // entry count
	buf = binary.LittleEndian.AppendUint16(buf, 0x0132) // DateTime
	buf = binary.LittleEndian.AppendUint16(buf, 2)      // ASCII
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(value)))
	buf = binary.LittleEndian.AppendUint32(buf, 8+2+12+4)
	buf = binary.LittleEndian.AppendUint32(buf, 0) // no next IFD
	return append(buf, value...)
}

func TestPhotoInspector_Extract(t *testing.T) {
	dir := t.TempDir()
	inspector := NewPhotoInspector(nil)

	t.Run("reads exif capture time", func(t *testing.T) {
		path := filepath.Join(dir, "tagged.tif")
		if err := os.WriteFile(path, tiffWithDateTime("2024:06:02 09:15:00"), 0644); err != nil {
			t.Fatalf("writing photo: %v", err)
		}

		meta, err := inspector.Extract(path)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if got := meta.CaptureDate.Format("2006-01-02 15:04:05"); got != "2024-06-02 09:15:00" {
			t.Errorf("CaptureDate = %s, want 2024-06-02 09:15:00", got)
		}
		if meta.Path != path {
			t.Errorf("Path = %q, want %q", meta.Path, path)
		}
	})

	t.Run("falls back to file time without exif", func(t *testing.T) {
		path := filepath.Join(dir, "plain.jpg")
		if err := os.WriteFile(path, []byte("not really a jpeg"), 0644); err != nil {
			t.Fatalf("writing photo: %v", err)
		}
		mtime := time.Date(2023, 8, 14, 18, 45, 0, 0, time.UTC)
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("setting file time: %v", err)
		}

		meta, err := inspector.Extract(`"` + path + `"`)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if !meta.CaptureDate.Equal(mtime) {
			t.Errorf("CaptureDate = %v, want %v", meta.CaptureDate, mtime)
		}
		if meta.Path != path {
			t.Errorf("Path = %q, want repaired %q", meta.Path, path)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := inspector.Extract(filepath.Join(dir, "gone.jpg"))
		if !errors.Is(err, ErrPhotoNotFound) {
			t.Errorf("Extract() error = %v, want ErrPhotoNotFound", err)
		}
	})
}
