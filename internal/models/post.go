package models

// SourcePost представляет отслеживаемый пост из ленты хэштега
type SourcePost struct {
	ID      string // ID идентификатор статуса в Mastodon
	Content string // Content HTML тело поста
}

// SourceReply представляет ответ в треде поста (descendant)
type SourceReply struct {
	ID      string
	Content string
}
