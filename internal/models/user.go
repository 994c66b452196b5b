package models

import "time"

// Profile holds the user-editable public fields of an account.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar"`
	Bio       string `json:"bio"`
}

// UserStats are the per-user counters. AverageScore is derived on read.
type UserStats struct {
	TotalQuizzes int     `json:"totalQuizzes"`
	TotalScore   int     `json:"totalScore"`
	AverageScore float64 `json:"averageScore"`
	Streak       int     `json:"streak"`
	Level        int     `json:"level"`
	Experience   int     `json:"experience"`
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Profile      Profile   `json:"profile"`
	Stats        UserStats `json:"stats"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserSummary is the public view of a user shown to other users.
type UserSummary struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Profile  Profile   `json:"profile"`
	Stats    UserStats `json:"stats"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Profile: u.Profile, Stats: u.Stats}
}
