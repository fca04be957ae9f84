package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Question is a single question/answer pair. The wire field names match the
// authoring front end.
type Question struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Game mirrors the games table. Questions are stored as a JSON-encoded text
// column because SQLite has no array type.
type Game struct {
	ID        int64     `json:"id"`
	CreatorID int64     `json:"creator_id"`
	GameType  string    `json:"game_type"`
	Title     string    `json:"title"`
	ShareLink string    `json:"share_link"`
	Questions string    `json:"-"`
	IsPro     bool      `json:"is_pro"`
	Plays     int64     `json:"plays"`
	CreatedAt time.Time `json:"created_at"`
}

// GameResponse is the projection returned by the authoring API.
type GameResponse struct {
	ID        int64      `json:"id"`
	GameType  string     `json:"game_type"`
	ShareLink string     `json:"share_link"`
	Plays     int64      `json:"plays"`
	Questions []Question `json:"questions"`
}

// GameStats is the aggregate view consumed by the admin panel.
type GameStats struct {
	Total      int64 `json:"total"`
	TotalPlays int64 `json:"total_plays"`
}

// EncodeQuestions serializes question pairs for the questions column.
func EncodeQuestions(questions []Question) (string, error) {
	if questions == nil {
		questions = []Question{}
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("failed to encode questions: %w", err)
	}
	return string(data), nil
}

// DecodeQuestions parses the stored questions column. An empty column yields
// an empty slice.
func DecodeQuestions(encoded string) ([]Question, error) {
	if encoded == "" {
		return []Question{}, nil
	}
	var questions []Question
	if err := json.Unmarshal([]byte(encoded), &questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	if questions == nil {
		questions = []Question{}
	}
	return questions, nil
}
