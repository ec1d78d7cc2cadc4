package model

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is a registered account (users collection)
type User struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	Role         string `json:"role" bson:"role"`

	// Aggregates, mutated only by exam grading
	TotalScore     int        `json:"totalScore" bson:"totalScore"`
	ExamsCompleted int        `json:"examsCompleted" bson:"examsCompleted"`
	Badges         []string   `json:"badges" bson:"badges"`
	LastExamAt     *time.Time `json:"lastExamAt,omitempty" bson:"lastExamAt,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// IsAdmin reports whether the user can moderate content
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasBadge reports whether the user already holds a badge by name
func (u *User) HasBadge(name string) bool {
	for _, b := range u.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// RankingEntry is one row of a leaderboard
type RankingEntry struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Rank   int    `json:"rank"`
}
