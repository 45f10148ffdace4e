package models

import (
	"time"

	"github.com/google/uuid"
)

type AssessmentType string

const (
	AssessmentTechnical  AssessmentType = "TECHNICAL"
	AssessmentBehavioral AssessmentType = "BEHAVIORAL"
	AssessmentMixed      AssessmentType = "MIXED"
)

type QuestionType string

const (
	QuestionVideo QuestionType = "VIDEO"
	QuestionAudio QuestionType = "AUDIO"
	QuestionText  QuestionType = "TEXT"
)

type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "EASY"
	DifficultyMedium QuestionDifficulty = "MEDIUM"
	DifficultyHard   QuestionDifficulty = "HARD"
)

type Assessment struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title           string         `gorm:"type:text;not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	JobTitle        string         `gorm:"type:text;not null" json:"job_title"`
	ExperienceLevel string         `gorm:"type:text" json:"experience_level"`
	RequiredSkills  []string       `gorm:"type:text;serializer:json" json:"required_skills"`
	CompanyContext  string         `gorm:"type:text" json:"company_context,omitempty"`
	Type            AssessmentType `gorm:"type:text;not null;default:'MIXED'" json:"type"`
	MaxDuration     int            `gorm:"not null;default:30" json:"max_duration"`
	PassingScore    int            `gorm:"not null;default:60" json:"passing_score"`
	AIAnalysis      bool           `gorm:"not null;default:true" json:"ai_analysis"`
	CreatedBy       string         `gorm:"type:text" json:"created_by"`
	CreatedAt       time.Time      `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Questions []Question `gorm:"foreignKey:AssessmentID" json:"questions,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

type Question struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AssessmentID uuid.UUID          `gorm:"type:uuid;not null;index" json:"assessment_id"`
	Text         string             `gorm:"type:text;not null" json:"text"`
	Type         QuestionType       `gorm:"type:text;not null" json:"type"`
	Difficulty   QuestionDifficulty `gorm:"type:text;not null;default:'MEDIUM'" json:"difficulty"`
	Skill        string             `gorm:"type:text" json:"skill,omitempty"`
	Order        int                `gorm:"column:position;not null" json:"order"`
	CreatedAt    time.Time          `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}
