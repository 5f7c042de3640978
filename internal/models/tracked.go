package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrMissingPageID возвращается при декодировании записи без id страницы
var ErrMissingPageID = errors.New("tracked entry has no pageId")

// TrackedEntry связывает исходный пост с опубликованной страницей
// и хранит id ответов, которые уже были слиты в страницу.
// JSON форма совпадает с tracked_posts.json: {"pageId": "...", "replies": [...]}
type TrackedEntry struct {
	PageID  string   `json:"pageId"`  // PageID идентификатор страницы WordPress
	Replies []string `json:"replies"` // Replies id ответов в порядке слияния
}

// Clone возвращает глубокую копию записи
func (e TrackedEntry) Clone() TrackedEntry {
	replies := make([]string, len(e.Replies))
	copy(replies, e.Replies)
	return TrackedEntry{PageID: e.PageID, Replies: replies}
}

// MarshalJSON всегда пишет replies как массив, даже пустой
func (e TrackedEntry) MarshalJSON() ([]byte, error) {
	type plain TrackedEntry
	out := plain(e)
	if out.Replies == nil {
		out.Replies = []string{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON принимает pageId как строку или как число.
// Старые файлы tracked_posts.json хранят числовой id страницы WordPress.
// Запись без pageId (в том числе null) невалидна.
func (e *TrackedEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		PageID  json.RawMessage `json:"pageId"`
		Replies []string        `json:"replies"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	pageID, err := decodePageID(raw.PageID)
	if err != nil {
		return err
	}

	e.PageID = pageID
	e.Replies = raw.Replies
	if e.Replies == nil {
		e.Replies = []string{}
	}
	return nil
}

func decodePageID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", ErrMissingPageID
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("invalid pageId: %w", err)
		}
		if s == "" {
			return "", ErrMissingPageID
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid pageId: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return "", fmt.Errorf("invalid pageId %s: %w", n, err)
	}
	return n.String(), nil
}
