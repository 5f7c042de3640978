package sync

import (
	"context"

	"github.com/iudanet/mastopress/internal/models"
)

//go:generate moq -out gateway_mock.go . SourceGateway DestinationGateway

// SourceGateway читает посты и ответы из сети-источника (Mastodon)
type SourceGateway interface {
	// FetchTaggedPosts returns the current tagged posts in source order
	FetchTaggedPosts(ctx context.Context) ([]models.SourcePost, error)

	// FetchReplies returns descendants of the post's thread in source order
	FetchReplies(ctx context.Context, postID string) ([]models.SourceReply, error)
}

// DestinationGateway пишет страницы в CMS (WordPress)
type DestinationGateway interface {
	// CreatePage publishes a page and returns its id
	CreatePage(ctx context.Context, title, body string) (string, error)

	// AppendOrReplace writes body to an existing page
	AppendOrReplace(ctx context.Context, pageID, body string) error
}
