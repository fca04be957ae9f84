package models

import "time"

// User mirrors the users table. The primary key is the Telegram ID, so a row
// exists only after registration has completed.
type User struct {
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone"`
	Language   string    `json:"language"`
	IsPro      bool      `json:"is_pro"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserResponse is the public projection returned by the API.
type UserResponse struct {
	TelegramID int64  `json:"telegram_id"`
	FullName   string `json:"full_name"`
	Language   string `json:"language"`
	IsPro      bool   `json:"is_pro"`
}

// UserStats is the aggregate view consumed by the admin panel.
type UserStats struct {
	Total int64 `json:"total"`
	Pro   int64 `json:"pro"`
}

// Free returns the number of non-pro users.
func (s UserStats) Free() int64 {
	return s.Total - s.Pro
}
