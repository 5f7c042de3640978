package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/mastopress/pkg/api"
)

// DefaultTimeout is the per-request timeout when none is configured
const DefaultTimeout = 30 * time.Second

// transport содержит общую HTTP логику клиентов Mastodon и WordPress
type transport struct {
	httpClient *http.Client
	authorize  func(req *http.Request)
	baseURL    string
}

func newTransport(baseURL string, timeout time.Duration, authorize func(req *http.Request)) transport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return transport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authorize:  authorize,
		httpClient: newHTTPClient(timeout),
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		// Настройка обработки редиректов
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Ограничиваем количество редиректов
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			// Копируем заголовки Authorization при редиректе
			if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
				req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
			}
			return nil
		},
	}
}

// doRequest выполняет HTTP запрос
// Не-2xx ответ возвращается как *api.StatusError
func (t transport) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	url := t.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.authorize != nil {
		t.authorize(req)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &api.StatusError{
			Method:     method,
			URL:        path,
			StatusCode: resp.StatusCode,
		}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			statusErr.Message = errResp.Text()
		}
		return statusErr
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
