package models

type AssessmentRequest struct {
	JobTitle          string   `json:"job_title" validate:"required"`
	ExperienceLevel   string   `json:"experience_level" validate:"required"`
	RequiredSkills    []string `json:"required_skills" validate:"required"`
	CompanyContext    string   `json:"company_context"`
	AssessmentType    string   `json:"assessment_type"`
	NumberOfQuestions int      `json:"number_of_questions"`
	Duration          int      `json:"duration"`
	CreatedBy         string   `json:"created_by"`
}

// GeneratedAssessment is the shape the model is asked to produce. JSON tags
// match the response schema property names.
type GeneratedAssessment struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	MaxDuration  int                 `json:"maxDuration"`
	PassingScore int                 `json:"passingScore"`
	AIAnalysis   bool                `json:"aiAnalysis"`
	Questions    []GeneratedQuestion `json:"questions"`
}

type GeneratedQuestion struct {
	Text       string `json:"text"`
	Type       string `json:"type"`
	Difficulty string `json:"difficulty"`
	Skill      string `json:"skill"`
	Order      int    `json:"order"`
}

type RegisterCandidateRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Position  string `json:"position"`
	ResumeURL string `json:"resume_url"`
}

type ResponseRequest struct {
	QuestionID   string `json:"question_id" validate:"required,uuid"`
	ResponseType string `json:"response_type" validate:"required"`
	Content      string `json:"content"`
}

type TranscriptionResponse struct {
	ResponseID    string `json:"response_id"`
	Transcription string `json:"transcription"`
}

type SubmitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Kind         string `json:"kind"`
	URL          string `json:"url"`
}
