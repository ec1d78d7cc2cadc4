package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Subject is the closed list of topics a question can be tagged with
type Subject string

const (
	SubjectMathematics Subject = "matematica"
	SubjectPortuguese  Subject = "portugues"
	SubjectLiterature  Subject = "literatura"
	SubjectEnglish     Subject = "ingles"
	SubjectHistory     Subject = "historia"
	SubjectGeography   Subject = "geografia"
	SubjectPhilosophy  Subject = "filosofia"
	SubjectSociology   Subject = "sociologia"
	SubjectPhysics     Subject = "fisica"
	SubjectChemistry   Subject = "quimica"
	SubjectBiology     Subject = "biologia"
)

// Subjects lists every valid subject in display order
var Subjects = []Subject{
	SubjectMathematics,
	SubjectPortuguese,
	SubjectLiterature,
	SubjectEnglish,
	SubjectHistory,
	SubjectGeography,
	SubjectPhilosophy,
	SubjectSociology,
	SubjectPhysics,
	SubjectChemistry,
	SubjectBiology,
}

func (s Subject) Valid() bool {
	for _, v := range Subjects {
		if v == s {
			return true
		}
	}
	return false
}

// Difficulty of a question
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// OptionLabels are the only labels an option may carry, in order
var OptionLabels = []string{"A", "B", "C", "D", "E"}

// Option is one labeled alternative of a multiple-choice question
type Option struct {
	Label string `json:"label" bson:"label"`
	Text  string `json:"text" bson:"text"`
}

// Question is a stored multiple-choice question (questions collection)
type Question struct {
	ID            string     `json:"id" bson:"_id,omitempty"`
	Subject       Subject    `json:"subject" bson:"subject"`
	Difficulty    Difficulty `json:"difficulty" bson:"difficulty"`
	Prompt        string     `json:"prompt" bson:"prompt"`
	Options       []Option   `json:"options" bson:"options"`
	CorrectOption string     `json:"correctOption" bson:"correctOption"`
	Explanation   string     `json:"explanation,omitempty" bson:"explanation,omitempty"`
	Source        string     `json:"source,omitempty" bson:"source,omitempty"` // e.g. "ENEM", "FUVEST"
	Year          int        `json:"year,omitempty" bson:"year,omitempty"`

	// Cumulative usage counters, only ever incremented
	TimesAnswered   int `json:"timesAnswered" bson:"timesAnswered"`
	TimesCorrect    int `json:"timesCorrect" bson:"timesCorrect"`
	AccuracyPercent int `json:"accuracyPercent" bson:"accuracyPercent"`

	Active   bool   `json:"active" bson:"active"`
	Approved bool   `json:"approved" bson:"approved"`
	Rejected bool   `json:"rejected,omitempty" bson:"rejected,omitempty"`
	AuthorID string `json:"authorId,omitempty" bson:"authorId,omitempty"`

	ReviewedBy string     `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// HasOption reports whether label is one of the question's option labels
func (q *Question) HasOption(label string) bool {
	for _, o := range q.Options {
		if o.Label == label {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of a question before it is stored
func (q *Question) Validate() error {
	var errs []string
	if strings.TrimSpace(q.Prompt) == "" {
		errs = append(errs, "prompt is required")
	}
	if !q.Subject.Valid() {
		errs = append(errs, fmt.Sprintf("unknown subject %q", q.Subject))
	}
	if !q.Difficulty.Valid() {
		errs = append(errs, fmt.Sprintf("unknown difficulty %q", q.Difficulty))
	}
	if len(q.Options) < 2 || len(q.Options) > len(OptionLabels) {
		errs = append(errs, fmt.Sprintf("a question needs between 2 and %d options", len(OptionLabels)))
	}

	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if !validLabel(o.Label) {
			errs = append(errs, fmt.Sprintf("invalid option label %q", o.Label))
			continue
		}
		if seen[o.Label] {
			errs = append(errs, fmt.Sprintf("duplicate option label %q", o.Label))
		}
		seen[o.Label] = true
		if strings.TrimSpace(o.Text) == "" {
			errs = append(errs, fmt.Sprintf("option %s has no text", o.Label))
		}
	}
	if !q.HasOption(q.CorrectOption) {
		errs = append(errs, fmt.Sprintf("correct option %q is not among the options", q.CorrectOption))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validLabel(label string) bool {
	for _, l := range OptionLabels {
		if l == label {
			return true
		}
	}
	return false
}

// SanitizedQuestion is what a student sees while taking an exam.
// It never carries the answer key, the explanation or usage counters.
type SanitizedQuestion struct {
	ID         string     `json:"id"`
	Order      int        `json:"order"`
	Subject    Subject    `json:"subject"`
	Difficulty Difficulty `json:"difficulty"`
	Prompt     string     `json:"prompt"`
	Options    []Option   `json:"options"`
	Source     string     `json:"source,omitempty"`
	Year       int        `json:"year,omitempty"`
}

// Sanitize strips every answer-revealing field
func (q *Question) Sanitize(order int) SanitizedQuestion {
	opts := make([]Option, len(q.Options))
	copy(opts, q.Options)
	return SanitizedQuestion{
		ID:         q.ID,
		Order:      order,
		Subject:    q.Subject,
		Difficulty: q.Difficulty,
		Prompt:     q.Prompt,
		Options:    opts,
		Source:     q.Source,
		Year:       q.Year,
	}
}

// QuestionFilter narrows admin listings of the question bank
type QuestionFilter struct {
	Subject    Subject
	Difficulty Difficulty
	Status     ReviewStatus
	AuthorID   string
	Limit      int
	Offset     int
}

// ReviewStatus is the moderation state derived from approved/rejected flags
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

func (r ReviewStatus) Valid() bool {
	return r == ReviewPending || r == ReviewApproved || r == ReviewRejected
}
