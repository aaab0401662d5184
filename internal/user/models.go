package user

import "time"

// User is a profile row. AuthID links the row to its identity account;
// the two are written independently, so either side can exist alone.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	NickName     string    `json:"nick_name"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	ProfileImage string    `json:"profile_image"`
	IsAdmin      bool      `json:"is_admin"`
	AuthID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateUser struct {
	Name         string `json:"name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	NickName     string `json:"nick_name"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	ProfileImage string `json:"profile_image"`
	AuthID       string `json:"user_id"`
}

// UpdateUser carries a partial patch; zero values leave fields unchanged.
type UpdateUser struct {
	Name         string `json:"name"`
	LastName     string `json:"last_name"`
	NickName     string `json:"nick_name"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	ProfileImage string `json:"profile_image"`
}

// Filters narrow List results; empty fields are skipped and the rest
// combine with AND. Text filters match substrings case-insensitively.
type Filters struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	NickName string `json:"nick_name"`
	Gender   string `json:"gender"`
	AgeMin   int    `json:"age_min"`
	AgeMax   int    `json:"age_max"`
}
