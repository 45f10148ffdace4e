package models

import (
	"time"

	"github.com/google/uuid"
)

type Recommendation string

const (
	RecommendationStrongHire Recommendation = "STRONG_HIRE"
	RecommendationHire       Recommendation = "HIRE"
	RecommendationConsider   Recommendation = "CONSIDER"
	RecommendationReject     Recommendation = "REJECT"
)

// AnalysisTier records which strategy produced the stored result. The tiers
// degrade in fidelity: structured -> degraded -> static.
type AnalysisTier string

const (
	TierStructured AnalysisTier = "structured"
	TierDegraded   AnalysisTier = "degraded"
	TierStatic     AnalysisTier = "static"
)

// Analysis is the scored evaluation of one candidate. One row per candidate:
// re-running the analysis overwrites the existing row.
type Analysis struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"candidate_id"`
	Summary            string         `gorm:"type:text" json:"summary"`
	Strengths          []string       `gorm:"type:text;serializer:json" json:"strengths"`
	Weaknesses         []string       `gorm:"type:text;serializer:json" json:"weaknesses"`
	FeedbackPoints     []string       `gorm:"type:text;serializer:json" json:"feedback_points"`
	SkillMatch         float64        `gorm:"not null" json:"skill_match"`
	CommunicationScore float64        `gorm:"not null" json:"communication_score"`
	TechnicalScore     float64        `gorm:"not null" json:"technical_score"`
	OverallScore       float64        `gorm:"not null" json:"overall_score"`
	ExperienceScore    float64        `gorm:"not null" json:"experience_score"`
	IntentToJoin       float64        `gorm:"not null" json:"intent_to_join"`
	Recommendation     Recommendation `gorm:"type:text;not null" json:"recommendation"`
	Tier               AnalysisTier   `gorm:"type:text;not null" json:"tier"`
	CreatedAt          time.Time      `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}
