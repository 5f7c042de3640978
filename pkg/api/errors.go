package api

import "fmt"

// ErrorResponse представляет ответ с ошибкой.
// Mastodon возвращает {"error": "..."}, WordPress - {"code": "...", "message": "..."}
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`   // описание ошибки (Mastodon)
	Code    string `json:"code,omitempty"`    // машинный код ошибки (WordPress)
	Message string `json:"message,omitempty"` // сообщение (WordPress)
}

// Text возвращает наиболее информативное сообщение из ответа
func (e ErrorResponse) Text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Error != "":
		return e.Error
	default:
		return e.Code
	}
}

// StatusError описывает ответ удаленного API с не-2xx статусом
type StatusError struct {
	Method     string
	URL        string
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: server error (%d): %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: request failed with status %d", e.Method, e.URL, e.StatusCode)
}

// Temporary reports whether retrying the same request later may succeed
func (e *StatusError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
