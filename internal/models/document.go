package models

import (
	"time"

	"github.com/google/uuid"
)

// Document tracks an uploaded file (candidate resume or recorded media answer).
type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	Kind             string    `gorm:"type:text" json:"kind"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	URL              string    `gorm:"type:text" json:"url"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
