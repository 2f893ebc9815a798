package domain

import "time"

// Roles a registered user can hold.
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// OptionCount is the fixed number of options every question carries.
const OptionCount = 4

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Role         string
}

// PublicUser is the client-facing view of a user returned at login.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Public strips credentials from a user record.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.FullName, Email: u.Email, Role: u.Role}
}

// Quiz is a named collection of questions owned by the teacher who first
// created a question under its title.
type Quiz struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedBy string `json:"createdBy"`
}

// Question is an MCQ item with exactly 4 options and one correct index.
// QuizID references the owning quiz; QuizTitle is a denormalized copy kept
// for listings.
type Question struct {
	ID            string    `json:"id"`
	QuizID        string    `json:"quizId"`
	QuizTitle     string    `json:"quizTitle"`
	Text          string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectOption int       `json:"correctOption"`
	ExamDuration  int       `json:"examDuration"` // minutes
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Answer records one student response to one question. IsCorrect is derived
// server-side at write time. QuizTitle is recorded verbatim from the
// submission payload, not re-derived from the question.
type Answer struct {
	ID             string    `json:"id"`
	StudentID      string    `json:"student"`
	QuestionID     string    `json:"question"`
	SelectedOption int       `json:"answer"`
	IsCorrect      bool      `json:"isCorrect"`
	QuizTitle      string    `json:"quizTitle"`
	CreatedAt      time.Time `json:"createdAt"`
}

// QuizScore is a per-quiz correct-answer counter inside a ranking entry.
type QuizScore struct {
	QuizTitle      string `json:"quizTitle"`
	CorrectAnswers int    `json:"correctAnswers"`
}

// RankingEntry is one leaderboard row.
type RankingEntry struct {
	StudentName         string      `json:"studentName"`
	CorrectAnswersCount int         `json:"correctAnswersCount"`
	QuizzesTaken        []QuizScore `json:"quizzesTaken"`
}
