package models

import (
	"time"

	"github.com/google/uuid"
)

// FileTypeResume is the only document kind this service stores today; the
// column stays so a cover-letter upload can reuse the table.
const FileTypeResume = "resume"

// Document is an uploaded résumé PDF: the stored file plus the name the
// client gave it. Text is re-extracted from FilePath on demand and never
// persisted.
type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FileType         string    `gorm:"type:text;default:'resume'" json:"file_type"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	SizeBytes        int64     `gorm:"type:bigint" json:"size_bytes"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
