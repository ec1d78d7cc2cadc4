package model

import "time"

// TemplateType groups exam templates
type TemplateType string

const (
	TemplateSimulado  TemplateType = "simulado"  // Formal full exam (ENEM, vestibular)
	TemplateIntensive TemplateType = "intensivo" // Single-subject drill
	TemplatePractice  TemplateType = "treino"    // Short practice round
)

func (t TemplateType) Valid() bool {
	return t == TemplateSimulado || t == TemplateIntensive || t == TemplatePractice
}

// SubjectQuota is how many questions of a subject a template asks for
type SubjectQuota struct {
	Subject Subject `json:"subject"`
	Count   int     `json:"count"`
}

// ExamTemplate is a named, statically configured exam definition
type ExamTemplate struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description,omitempty"`
	Type              TemplateType   `json:"type"`
	Quotas            []SubjectQuota `json:"quotas"`
	Difficulties      []Difficulty   `json:"difficulties"` // empty means any difficulty
	TimeLimitMinutes  int            `json:"timeLimitMinutes"`
	PointsPerQuestion int            `json:"pointsPerQuestion"`
	BonusBadge        string         `json:"bonusBadge,omitempty"` // Simulado only
}

// TotalQuestions is the sum of all subject quotas
func (t ExamTemplate) TotalQuestions() int {
	total := 0
	for _, q := range t.Quotas {
		total += q.Count
	}
	return total
}

// AllowsDifficulty reports whether d is in the template's allowed set
func (t ExamTemplate) AllowsDifficulty(d Difficulty) bool {
	if len(t.Difficulties) == 0 {
		return true
	}
	for _, allowed := range t.Difficulties {
		if allowed == d {
			return true
		}
	}
	return false
}

// TimeLimit returns the time limit as a duration
func (t ExamTemplate) TimeLimit() time.Duration {
	return time.Duration(t.TimeLimitMinutes) * time.Minute
}

// AvailabilityStatus tells the client whether a template can be started
type AvailabilityStatus string

const (
	AvailabilityComplete    AvailabilityStatus = "complete"    // every quota can be filled
	AvailabilityPartial     AvailabilityStatus = "partial"     // starts with fewer questions
	AvailabilityUnavailable AvailabilityStatus = "unavailable" // below half of the required total
)

// SubjectAvailability is the live count for one quota
type SubjectAvailability struct {
	Subject   Subject `json:"subject"`
	Required  int     `json:"required"`
	Available int     `json:"available"`
}

// TemplateAvailability is a catalog entry annotated with live question counts
type TemplateAvailability struct {
	Template  ExamTemplate          `json:"template"`
	Required  int                   `json:"required"`
	Available int                   `json:"available"` // questions an assembly would select
	Status    AvailabilityStatus    `json:"status"`
	Subjects  []SubjectAvailability `json:"subjects"`
}

// AssembledExam is returned when a user starts an exam
type AssembledExam struct {
	SessionID         string              `json:"sessionId,omitempty"`
	TemplateID        string              `json:"templateId"`
	Name              string              `json:"name"`
	Questions         []SanitizedQuestion `json:"questions"`
	TotalQuestions    int                 `json:"totalQuestions"`
	TimeLimitSeconds  int                 `json:"timeLimitSeconds"`
	PointsPerQuestion int                 `json:"pointsPerQuestion"`
	StartedAt         time.Time           `json:"startedAt"`
}

// ExamSession is the short-lived record of a started exam (Redis)
type ExamSession struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	TemplateID  string    `json:"templateId"`
	QuestionIDs []string  `json:"questionIds"`
	StartedAt   time.Time `json:"startedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// SubmittedAnswer is one (question, chosen option) pair sent by the client
type SubmittedAnswer struct {
	QuestionID   string `json:"questionId"`
	ChosenOption string `json:"chosenOption"`
}

// Complete reports whether both fields are present
func (a SubmittedAnswer) Complete() bool {
	return a.QuestionID != "" && a.ChosenOption != ""
}

// FinishExamRequest is the body of POST /api/exams/{templateId}/finish
type FinishExamRequest struct {
	Answers    []SubmittedAnswer `json:"answers"`
	StartedAt  *time.Time        `json:"startedAt,omitempty"`
	FinishedAt *time.Time        `json:"finishedAt,omitempty"`
}

// UnmatchedReason explains why an answer was left out of the tally
type UnmatchedReason string

const (
	UnmatchedMalformed  UnmatchedReason = "malformed"   // missing question id or option
	UnmatchedNotFound   UnmatchedReason = "not_found"   // question id not in the store
	UnmatchedStoreError UnmatchedReason = "store_error" // lookup failed
)

// UnmatchedAnswer is a submitted answer that could not be graded
type UnmatchedAnswer struct {
	QuestionID   string          `json:"questionId"`
	ChosenOption string          `json:"chosenOption"`
	Reason       UnmatchedReason `json:"reason"`
}

// QuestionOutcome is the graded detail of one matched answer
type QuestionOutcome struct {
	QuestionID    string  `json:"questionId"`
	Subject       Subject `json:"subject"`
	ChosenOption  string  `json:"chosenOption"`
	CorrectOption string  `json:"correctOption"`
	Correct       bool    `json:"correct"`
	Points        int     `json:"points"`
	Explanation   string  `json:"explanation,omitempty"`
}

// SubjectScore is the per-subject subtotal of a grading pass
type SubjectScore struct {
	Subject    Subject `json:"subject"`
	Total      int     `json:"total"`
	Correct    int     `json:"correct"`
	Percentage int     `json:"percentage"`
}

// GradingResult is the full report returned after finishing an exam
type GradingResult struct {
	TemplateID     string            `json:"templateId"`
	TemplateName   string            `json:"templateName"`
	UserID         string            `json:"userId"`
	Score          int               `json:"score"`
	MaxScore       int               `json:"maxScore"`
	Submitted      int               `json:"submitted"`
	Graded         int               `json:"graded"`
	Correct        int               `json:"correct"`
	Percentage     int               `json:"percentage"`
	Classification string            `json:"classification"`
	Subjects       []SubjectScore    `json:"subjects"`
	NewBadges      []string          `json:"newBadges"`
	Details        []QuestionOutcome `json:"details"`
	Unmatched      []UnmatchedAnswer `json:"unmatched"`

	// User aggregates after this submission
	TotalScore     int `json:"totalScore"`
	ExamsCompleted int `json:"examsCompleted"`

	DurationSeconds int  `json:"durationSeconds,omitempty"`
	TimeExpired     bool `json:"timeExpired,omitempty"`
	Rank            int  `json:"rank,omitempty"`
}

// Mistakes returns the outcomes answered incorrectly
func (r *GradingResult) Mistakes() []QuestionOutcome {
	var out []QuestionOutcome
	for _, d := range r.Details {
		if !d.Correct {
			out = append(out, d)
		}
	}
	return out
}

// ExamRecord is the persisted summary of a finished exam (exam_results collection)
type ExamRecord struct {
	ID             string         `json:"id" bson:"_id,omitempty"`
	UserID         string         `json:"userId" bson:"userId"`
	TemplateID     string         `json:"templateId" bson:"templateId"`
	TemplateName   string         `json:"templateName" bson:"templateName"`
	Score          int            `json:"score" bson:"score"`
	Graded         int            `json:"graded" bson:"graded"`
	Correct        int            `json:"correct" bson:"correct"`
	Percentage     int            `json:"percentage" bson:"percentage"`
	Classification string         `json:"classification" bson:"classification"`
	Subjects       []SubjectScore `json:"subjects" bson:"subjects"`
	NewBadges      []string       `json:"newBadges,omitempty" bson:"newBadges,omitempty"`
	StartedAt      *time.Time     `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	FinishedAt     time.Time      `json:"finishedAt" bson:"finishedAt"`
}
