package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iudanet/mastopress/internal/models"
	"github.com/iudanet/mastopress/internal/validation"
	"github.com/iudanet/mastopress/pkg/api"
)

// MaxTagTimelineLimit is the largest page size Mastodon accepts for tag timelines
const MaxTagTimelineLimit = 40

// MastodonClient читает ленту хэштега и треды ответов
type MastodonClient struct {
	transport
	hashtag string
	limit   int
}

// NewMastodonClient создает клиент Mastodon API.
// baseURL - адрес инстанса без /api/v1; token может быть пустым для публичных лент.
func NewMastodonClient(baseURL, token, hashtag string, limit int, timeout time.Duration) *MastodonClient {
	var authorize func(req *http.Request)
	if token != "" {
		authorize = func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if limit <= 0 || limit > MaxTagTimelineLimit {
		limit = MaxTagTimelineLimit
	}

	return &MastodonClient{
		transport: newTransport(baseURL, timeout, authorize),
		hashtag:   validation.NormalizeHashtag(hashtag),
		limit:     limit,
	}
}

// FetchTaggedPosts возвращает статусы ленты хэштега в порядке, отданном сервером
func (c *MastodonClient) FetchTaggedPosts(ctx context.Context) ([]models.SourcePost, error) {
	var statuses []api.Status
	path := fmt.Sprintf("/api/v1/timelines/tag/%s?limit=%s", url.PathEscape(c.hashtag), strconv.Itoa(c.limit))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &statuses); err != nil {
		return nil, fmt.Errorf("fetch tag timeline #%s: %w", c.hashtag, err)
	}

	posts := make([]models.SourcePost, 0, len(statuses))
	for _, s := range statuses {
		posts = append(posts, models.SourcePost{ID: s.ID, Content: s.Content})
	}
	return posts, nil
}

// FetchReplies возвращает потомков статуса в треде
func (c *MastodonClient) FetchReplies(ctx context.Context, postID string) ([]models.SourceReply, error) {
	var threadCtx api.Context
	path := fmt.Sprintf("/api/v1/statuses/%s/context", url.PathEscape(postID))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &threadCtx); err != nil {
		return nil, fmt.Errorf("fetch context of %s: %w", postID, err)
	}

	replies := make([]models.SourceReply, 0, len(threadCtx.Descendants))
	for _, s := range threadCtx.Descendants {
		replies = append(replies, models.SourceReply{ID: s.ID, Content: s.Content})
	}
	return replies, nil
}
