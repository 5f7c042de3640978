package api

import "time"

// Status представляет статус (пост) Mastodon в объеме, нужном синхронизатору
type Status struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Content     string    `json:"content"` // HTML тело статуса
	InReplyToID *string   `json:"in_reply_to_id"`
	Account     Account   `json:"account"`
}

// Account представляет автора статуса
type Account struct {
	ID   string `json:"id"`
	Acct string `json:"acct"`
}

// Context представляет ответ /api/v1/statuses/:id/context
type Context struct {
	Ancestors   []Status `json:"ancestors"`
	Descendants []Status `json:"descendants"` // ответы в треде
}
