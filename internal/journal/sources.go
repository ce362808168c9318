package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"vj-go/internal/model"
)

// PhotoSource supplies the photos the daily log joins over.
type PhotoSource interface {
	// ForTrip returns the trip's photos in stored order.
	ForTrip(tripID int) []model.Photo
}

// ExpenseSource supplies expenses and the conversion used for day totals.
type ExpenseSource interface {
	// ForTrip returns the trip's expenses in stored order.
	ForTrip(tripID int) []model.Expense

	// Convert converts amount between currency codes. Unknown codes pass
	// the amount through unchanged.
	Convert(amount decimal.Decimal, from, to string) decimal.Decimal
}

// NoteSource supplies the notes the daily log joins over.
type NoteSource interface {
	// ForTrip returns the trip's notes in stored order.
	ForTrip(tripID int) []model.Note
}

// PhotoMetadata is what a MetadataExtractor learned about a photo file.
type PhotoMetadata struct {
	Path        string    // repaired path when the raw one needed fixing
	CaptureDate time.Time // EXIF original time, else file time
}

// MetadataExtractor reads capture information from a photo file.
// Implementations degrade to a file-time fallback on unreadable image data
// and only return an error when the file cannot be found at all.
type MetadataExtractor interface {
	Extract(rawPath string) (PhotoMetadata, error)
}
