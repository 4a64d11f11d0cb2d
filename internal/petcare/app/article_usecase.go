package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
	"petcare/internal/petcare/ports/api"
	"petcare/internal/petcare/ports/repositories"
	"petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

const (
	methodWriteArticle   = "WriteArticle"
	methodEditArticle    = "EditArticle"
	methodPublishArticle = "PublishArticle"
	methodArchiveArticle = "ArchiveArticle"

	msgArticleWritten = "article written"
	msgArticleUpdated = "article updated"

	errCtxCreatingArticle = "creating article"
	errCtxUpdatingArticle = "updating article"
	errCtxFindingArticle  = "finding article"
)

// ArticleUseCaseImpl реализует интерфейс ArticleUseCase.
type ArticleUseCaseImpl struct {
	articles  repositories.ArticleRepository
	slugs     services.SlugRegistry
	committer *Committer
}

func NewArticleUseCase(
	articles repositories.ArticleRepository,
	slugs services.SlugRegistry,
	committer *Committer,
) api.ArticleUseCase {
	return &ArticleUseCaseImpl{
		articles:  articles,
		slugs:     slugs,
		committer: committer,
	}
}

func (u *ArticleUseCaseImpl) Write(ctx context.Context, params entities.NewArticleParams) (*entities.Article, error) {
	log := logger.Log(ctx).With(zap.String("method", methodWriteArticle))

	slug, err := reserveSlug(ctx, u.slugs, events.AggregateArticle, slugSource(params.Slug, params.Title))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingArticle, err)
	}
	params.Slug = slug.String()

	article, err := entities.CreateArticle(params)
	if err == nil {
		err = create[*entities.Article](ctx, u.committer, u.articles, article)
	}
	if err != nil {
		releaseSlug(ctx, u.slugs, events.AggregateArticle, slug)
		log.Debug(ctx, errCtxCreatingArticle, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingArticle, err)
	}

	log.Info(ctx, msgArticleWritten,
		zap.String("articleID", article.ID().String()),
		zap.String("slug", slug.String()),
		zap.String("status", string(article.Status())))
	return article, nil
}

func (u *ArticleUseCaseImpl) Edit(
	ctx context.Context,
	articleID uuid.UUID,
	changes entities.ArticleChanges,
) (*entities.Article, error) {
	return u.change(ctx, methodEditArticle, articleID, func(a *entities.Article) error {
		return a.Update(changes)
	})
}

func (u *ArticleUseCaseImpl) Publish(ctx context.Context, articleID uuid.UUID) (*entities.Article, error) {
	return u.change(ctx, methodPublishArticle, articleID, (*entities.Article).Publish)
}

func (u *ArticleUseCaseImpl) Archive(ctx context.Context, articleID uuid.UUID) (*entities.Article, error) {
	return u.change(ctx, methodArchiveArticle, articleID, (*entities.Article).Archive)
}

func (u *ArticleUseCaseImpl) GetBySlug(ctx context.Context, slug string) (*entities.Article, error) {
	article, err := u.articles.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingArticle, err)
	}
	return article, nil
}

func (u *ArticleUseCaseImpl) change(
	ctx context.Context,
	method string,
	articleID uuid.UUID,
	mutate func(*entities.Article) error,
) (*entities.Article, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("articleID", articleID.String()))

	article, err := update[*entities.Article](ctx, u.committer, u.articles, articleID, mutate)
	if err != nil {
		log.Debug(ctx, errCtxUpdatingArticle, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingArticle, err)
	}

	log.Info(ctx, msgArticleUpdated, zap.String("status", string(article.Status())))
	return article, nil
}
