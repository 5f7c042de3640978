package api

// PageStatusPublish - статус публикации новых страниц WordPress
const PageStatusPublish = "publish"

// PageRequest представляет тело запроса на создание или обновление страницы.
// Пустые поля не отправляются, поэтому обновление контента не трогает заголовок.
type PageRequest struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Page представляет страницу WordPress (ответ /wp-json/wp/v2/pages)
type Page struct {
	ID      int64        `json:"id"`
	Link    string       `json:"link"`
	Status  string       `json:"status"`
	Title   RenderedText `json:"title"`
	Content RenderedText `json:"content"`
}

// RenderedText представляет поле с raw (context=edit) и rendered формами
type RenderedText struct {
	Raw      string `json:"raw,omitempty"`
	Rendered string `json:"rendered"`
}
