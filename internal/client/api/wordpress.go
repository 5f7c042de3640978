package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/iudanet/mastopress/pkg/api"
)

const pagesPath = "/wp-json/wp/v2/pages"

// UpdateMode определяет как AppendOrReplace записывает новый контент
type UpdateMode string

const (
	// UpdateModeAppend дописывает блок к текущему raw контенту страницы
	UpdateModeAppend UpdateMode = "append"
	// UpdateModeReplace заменяет контент страницы переданным блоком
	UpdateModeReplace UpdateMode = "replace"
)

// ErrInvalidUpdateMode is returned for an unknown update mode
var ErrInvalidUpdateMode = errors.New("invalid update mode")

// ParseUpdateMode validates a configured mode
func ParseUpdateMode(s string) (UpdateMode, error) {
	switch m := UpdateMode(s); m {
	case UpdateModeAppend, UpdateModeReplace:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUpdateMode, s)
	}
}

// WordPressClient публикует и обновляет страницы через WP REST API
type WordPressClient struct {
	transport
	status string
	mode   UpdateMode
}

// NewWordPressClient создает клиент WordPress.
// baseURL - адрес сайта без /wp-json; password - application password пользователя.
func NewWordPressClient(baseURL, username, password string, mode UpdateMode, timeout time.Duration) *WordPressClient {
	authorize := func(req *http.Request) {
		req.SetBasicAuth(username, password)
	}
	if mode == "" {
		mode = UpdateModeAppend
	}

	return &WordPressClient{
		transport: newTransport(baseURL, timeout, authorize),
		status:    api.PageStatusPublish,
		mode:      mode,
	}
}

// CreatePage публикует новую страницу и возвращает её id
func (c *WordPressClient) CreatePage(ctx context.Context, title, content string) (string, error) {
	var page api.Page
	req := api.PageRequest{Title: title, Content: content, Status: c.status}
	if err := c.doRequest(ctx, http.MethodPost, pagesPath, req, &page); err != nil {
		return "", fmt.Errorf("create page %q: %w", title, err)
	}
	if page.ID == 0 {
		return "", fmt.Errorf("create page %q: response has no page id", title)
	}
	return strconv.FormatInt(page.ID, 10), nil
}

// UpdatePage устанавливает контент страницы
func (c *WordPressClient) UpdatePage(ctx context.Context, pageID, content string) error {
	req := api.PageRequest{Content: content}
	if err := c.doRequest(ctx, http.MethodPost, pagesPath+"/"+pageID, req, nil); err != nil {
		return fmt.Errorf("update page %s: %w", pageID, err)
	}
	return nil
}

// GetPageContent возвращает raw контент страницы (требует права на редактирование)
func (c *WordPressClient) GetPageContent(ctx context.Context, pageID string) (string, error) {
	var page api.Page
	if err := c.doRequest(ctx, http.MethodGet, pagesPath+"/"+pageID+"?context=edit", nil, &page); err != nil {
		return "", fmt.Errorf("get page %s: %w", pageID, err)
	}
	return page.Content.Raw, nil
}

// AppendOrReplace записывает блок ответов в страницу согласно режиму клиента
func (c *WordPressClient) AppendOrReplace(ctx context.Context, pageID, body string) error {
	if c.mode == UpdateModeReplace {
		return c.UpdatePage(ctx, pageID, body)
	}

	current, err := c.GetPageContent(ctx, pageID)
	if err != nil {
		return err
	}

	content := body
	if current != "" {
		content = current + "\n" + body
	}
	return c.UpdatePage(ctx, pageID, content)
}

// Mode returns the configured update mode
func (c *WordPressClient) Mode() UpdateMode {
	return c.mode
}
