package models

import (
	"time"

	"github.com/google/uuid"
)

type CandidateStatus string

const (
	CandidateInvited    CandidateStatus = "INVITED"
	CandidateInProgress CandidateStatus = "IN_PROGRESS"
	CandidateSubmitted  CandidateStatus = "SUBMITTED"
	CandidateAnalyzing  CandidateStatus = "ANALYZING"
	CandidateAnalyzed   CandidateStatus = "ANALYZED"
)

type Candidate struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AssessmentID uuid.UUID       `gorm:"type:uuid;not null;index" json:"assessment_id"`
	Name         string          `gorm:"type:text;not null" json:"name"`
	Email        string          `gorm:"type:text;not null" json:"email"`
	Position     string          `gorm:"type:text" json:"position,omitempty"`
	ResumeURL    string          `gorm:"type:text" json:"resume_url,omitempty"`
	Status       CandidateStatus `gorm:"type:text;not null;default:'INVITED'" json:"status"`
	CreatedAt    time.Time       `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Assessment Assessment `gorm:"foreignKey:AssessmentID" json:"-"`
	Responses  []Response `gorm:"foreignKey:CandidateID" json:"responses,omitempty"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// Response holds one candidate answer. Content is either a fetchable media URL
// (video/audio questions) or the answer text itself (text questions).
// Transcription stays nil until the media has been transcribed.
type Response struct {
	ID            uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"candidate_id"`
	QuestionID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"question_id"`
	ResponseType  QuestionType `gorm:"type:text;not null" json:"response_type"`
	Content       string       `gorm:"type:text" json:"content"`
	Transcription *string      `gorm:"type:text" json:"transcription,omitempty"`
	CreatedAt     time.Time    `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Response) TableName() string {
	return "responses"
}
