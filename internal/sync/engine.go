package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/iudanet/mastopress/internal/models"
	"github.com/iudanet/mastopress/internal/state"
)

// DefaultTitlePrefix - префикс заголовка страницы, к нему дописывается id поста
const DefaultTitlePrefix = "Mastodon Post "

const (
	defaultCheckpointRetries = 3
	defaultCheckpointDelay   = time.Second
	// checkpointTimeout ограничивает сохранение, которое продолжается после отмены прохода
	checkpointTimeout = 30 * time.Second
)

// Engine выполняет проходы синхронизации: intake новых постов и слияние ответов.
// Engine не безопасен для конкурентного использования: проходы не должны пересекаться.
type Engine struct {
	source      SourceGateway
	dest        DestinationGateway
	tracked     *state.TrackedState
	saver       state.Saver
	logger      *slog.Logger
	titlePrefix string
	retries     uint64
	retryDelay  time.Duration
}

// Option настраивает Engine
type Option func(*Engine)

// WithTitlePrefix задает префикс заголовка создаваемых страниц
func WithTitlePrefix(prefix string) Option {
	return func(e *Engine) {
		e.titlePrefix = prefix
	}
}

// WithCheckpointRetry задает число повторов и паузу между попытками сохранения состояния
func WithCheckpointRetry(retries uint64, delay time.Duration) Option {
	return func(e *Engine) {
		e.retries = retries
		e.retryDelay = delay
	}
}

// NewEngine creates a sync engine over an explicitly owned tracked state
func NewEngine(source SourceGateway, dest DestinationGateway, tracked *state.TrackedState, saver state.Saver, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		source:      source,
		dest:        dest,
		tracked:     tracked,
		saver:       saver,
		logger:      logger,
		titlePrefix: DefaultTitlePrefix,
		retries:     defaultCheckpointRetries,
		retryDelay:  defaultCheckpointDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.retryDelay <= 0 {
		e.retryDelay = time.Millisecond
	}
	return e
}

// IntakeResult contains intake phase counters
type IntakeResult struct {
	Fetched        int // количество полученных постов
	Created        int // количество созданных страниц
	AlreadyTracked int // посты, для которых страница уже есть
	CreateFailed   int // ошибки создания, пост будет повторен в следующем проходе
	Duplicates     int // повторы id внутри одной выборки
	FetchFailed    bool
}

// MergeResult contains reply merge phase counters
type MergeResult struct {
	Posts         int // количество обработанных отслеживаемых постов
	PagesUpdated  int // количество успешных записей в страницы
	RepliesMerged int // количество новых ответов, записанных в страницы
	UpdateFailed  int // ошибки записи, ответы будут повторены
	FetchFailed   int // ошибки получения ответов
}

// PassResult объединяет результаты обеих фаз прохода
type PassResult struct {
	ID     string
	Intake IntakeResult
	Merge  MergeResult
}

// RunPass выполняет intake и затем слияние ответов.
// Ошибка возвращается только при сбое сохранения состояния (state.ErrPersistence);
// сбой checkpoint после intake прерывает проход.
func (e *Engine) RunPass(ctx context.Context) (*PassResult, error) {
	result := &PassResult{ID: uuid.NewString()}
	logger := e.logger.With("pass_id", result.ID)

	logger.Info("Starting sync pass", "tracked", e.tracked.Len())

	intake, err := e.intake(ctx, logger)
	if intake != nil {
		result.Intake = *intake
	}
	if err != nil {
		return result, err
	}

	merge, err := e.mergeReplies(ctx, logger)
	if merge != nil {
		result.Merge = *merge
	}
	if err != nil {
		return result, err
	}

	logger.Info("Sync pass completed",
		"created", result.Intake.Created,
		"create_failed", result.Intake.CreateFailed,
		"pages_updated", result.Merge.PagesUpdated,
		"replies_merged", result.Merge.RepliesMerged,
		"update_failed", result.Merge.UpdateFailed,
		"tracked", e.tracked.Len())

	return result, nil
}

// Intake создает страницы для постов, которых нет в отслеживаемом состоянии
func (e *Engine) Intake(ctx context.Context) (*IntakeResult, error) {
	return e.intake(ctx, e.logger)
}

// MergeReplies дописывает новые ответы в страницы отслеживаемых постов
func (e *Engine) MergeReplies(ctx context.Context) (*MergeResult, error) {
	return e.mergeReplies(ctx, e.logger)
}

func (e *Engine) intake(ctx context.Context, logger *slog.Logger) (*IntakeResult, error) {
	result := &IntakeResult{}

	posts, err := e.source.FetchTaggedPosts(ctx)
	if err != nil {
		// Сбой источника: продолжаем с пустым списком
		logger.Warn("Failed to fetch tagged posts", "error", err)
		result.FetchFailed = true
		posts = nil
	}
	result.Fetched = len(posts)

	attempted := make(map[string]struct{}, len(posts))
	for _, post := range posts {
		if _, dup := attempted[post.ID]; dup {
			result.Duplicates++
			continue
		}
		attempted[post.ID] = struct{}{}

		if e.tracked.Has(post.ID) {
			result.AlreadyTracked++
			continue
		}

		logger.Info("New post found", "post_id", post.ID)

		pageID, err := e.dest.CreatePage(ctx, e.titlePrefix+post.ID, post.Content)
		if err != nil || pageID == "" {
			// Запись не создаем: пост будет считаться новым в следующем проходе
			logger.Log(ctx, faultLevel(err), "Failed to create page", "post_id", post.ID, "error", err)
			result.CreateFailed++
			continue
		}

		e.tracked.Put(post.ID, models.TrackedEntry{PageID: pageID, Replies: []string{}})
		result.Created++
		logger.Debug("Page created", "post_id", post.ID, "page_id", pageID)
	}

	if err := e.checkpoint(ctx, logger, "intake"); err != nil {
		return result, err
	}

	return result, nil
}

func (e *Engine) mergeReplies(ctx context.Context, logger *slog.Logger) (*MergeResult, error) {
	result := &MergeResult{}

	for _, postID := range e.tracked.PostIDs() {
		result.Posts++

		entry, _ := e.tracked.Get(postID)

		replies, err := e.source.FetchReplies(ctx, postID)
		if err != nil {
			logger.Warn("Failed to fetch replies", "post_id", postID, "error", err)
			result.FetchFailed++
			continue
		}

		newReplies := e.newReplies(postID, replies)
		if len(newReplies) == 0 {
			continue
		}

		logger.Info("Updating page with new replies",
			"post_id", postID,
			"page_id", entry.PageID,
			"count", len(newReplies))

		if err := e.dest.AppendOrReplace(ctx, entry.PageID, RenderReplies(newReplies)); err != nil {
			// id ответов не записываем: они будут отправлены повторно
			logger.Log(ctx, faultLevel(err), "Failed to update page",
				"post_id", postID,
				"page_id", entry.PageID,
				"error", err)
			result.UpdateFailed++
			continue
		}

		ids := make([]string, 0, len(newReplies))
		for _, r := range newReplies {
			ids = append(ids, r.ID)
		}
		result.RepliesMerged += e.tracked.AddMergedReplies(postID, ids...)
		result.PagesUpdated++
	}

	if err := e.checkpoint(ctx, logger, "merge"); err != nil {
		return result, err
	}

	return result, nil
}

// newReplies возвращает ответы, id которых еще не слиты в страницу.
// Сравнивается только идентичность; повтор id внутри одной выборки отбрасывается.
func (e *Engine) newReplies(postID string, replies []models.SourceReply) []models.SourceReply {
	seen := make(map[string]struct{}, len(replies))
	var out []models.SourceReply
	for _, r := range replies {
		if e.tracked.HasReply(postID, r.ID) {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// checkpoint сохраняет состояние с повторами; итоговая ошибка оборачивает state.ErrPersistence.
// Отмена ctx не прерывает сохранение: созданные в проходе страницы должны попасть в хранилище.
func (e *Engine) checkpoint(ctx context.Context, logger *slog.Logger, phase string) error {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), checkpointTimeout)
	defer cancel()

	backoff := retry.WithMaxRetries(e.retries, retry.NewConstant(e.retryDelay))

	attempt := 0
	err := retry.Do(saveCtx, backoff, func(ctx context.Context) error {
		attempt++
		if err := e.saver.Save(ctx, e.tracked); err != nil {
			logger.Warn("Checkpoint failed", "phase", phase, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to persist tracked state", "phase", phase, "attempts", attempt, "error", err)
		return fmt.Errorf("%w: %s checkpoint: %w", state.ErrPersistence, phase, err)
	}

	return nil
}

// faultLevel выбирает уровень лога для сбоя шлюза: постоянные ошибки
// (например 401 или 404 от WordPress) требуют внимания оператора
func faultLevel(err error) slog.Level {
	var t interface{ Temporary() bool }
	if errors.As(err, &t) && !t.Temporary() {
		return slog.LevelError
	}
	return slog.LevelWarn
}

// RenderReplies собирает тело обновления: каждый ответ отдельным блоком <p>, в порядке выборки
func RenderReplies(replies []models.SourceReply) string {
	blocks := make([]string, 0, len(replies))
	for _, r := range replies {
		blocks = append(blocks, "<p>"+r.Content+"</p>")
	}
	return strings.Join(blocks, "\n")
}
