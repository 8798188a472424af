package models

import "time"

// Role values stored on users.role.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Status values stored on users.status.
const (
	StatusActive = "active"
	StatusBanned = "banned"
)

type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	Avatar    *string    `json:"avatar,omitempty"`
	XP        int64      `json:"xp"`
	Level     int        `json:"level"`
	Streak    int        `json:"streak"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Profile struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar,omitempty"`
	XP        int64     `json:"xp"`
	Streak    int       `json:"streak"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
