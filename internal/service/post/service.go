package post

import (
	"context"

	"mindful_server/internal/dao/gormdb/repository"
	"mindful_server/internal/dto/request"
	"mindful_server/internal/dto/respond"
	"mindful_server/internal/model"
	"mindful_server/pkg/constants"
	"mindful_server/pkg/errorx"
	"mindful_server/pkg/util/pagination"

	"go.uber.org/zap"
)

var (
	errInvalidID     = errorx.New(errorx.CodeInvalidParam, "Invalid post ID format")
	errInvalidUserID = errorx.New(errorx.CodeInvalidParam, "Invalid user ID format")
	errNotFound      = errorx.New(errorx.CodeNotFound, "Post not found")
	errUserNotFound  = errorx.New(errorx.CodeNotFound, "User not found")
)

type postService struct {
	repos *repository.Repositories
}

func NewPostService(repos *repository.Repositories) *postService {
	return &postService{repos: repos}
}

func fail(op string, err error) error {
	if errorx.IsClientError(err) {
		return err
	}
	zap.L().Error(op, zap.Error(err))
	return errorx.ErrServerBusy
}

func (p *postService) Create(ctx context.Context, req request.CreatePostRequest) (*model.Post, error) {
	userID, ok := model.ParseID(req.User)
	if !ok {
		return nil, errInvalidUserID
	}
	req.User = userID
	post := &model.Post{
		UserID:     req.User,
		Content:    req.Content,
		Mood:       req.Mood,
		Supportive: req.Supportive,
	}
	err := p.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.User.FindByID(ctx, req.User); err != nil {
			if errorx.IsNotFound(err) {
				return errUserNotFound
			}
			return err
		}
		return tx.Post.Create(ctx, post)
	})
	if err != nil {
		return nil, fail("create post", err)
	}
	return p.find(ctx, post.ID)
}

func (p *postService) Get(ctx context.Context, id string) (*model.Post, error) {
	id, ok := model.ParseID(id)
	if !ok {
		return nil, errInvalidID
	}
	return p.find(ctx, id)
}

func (p *postService) List(ctx context.Context, q request.PostListQuery) (*respond.PageResult[model.Post], error) {
	filter := repository.PostFilter{Mood: q.Mood}
	if q.Supportive != "" {
		supportive := q.Supportive == "true"
		filter.Supportive = &supportive
	}
	return p.list(ctx, filter, q.PageQuery)
}

func (p *postService) ListByUser(ctx context.Context, userID string, q request.PageQuery) (*respond.PageResult[model.Post], error) {
	userID, ok := model.ParseID(userID)
	if !ok {
		return nil, errInvalidUserID
	}
	return p.list(ctx, repository.PostFilter{UserID: userID}, q)
}

func (p *postService) ListByMood(ctx context.Context, mood string, q request.PageQuery) (*respond.PageResult[model.Post], error) {
	return p.list(ctx, repository.PostFilter{Mood: mood}, q)
}

func (p *postService) ListSupportive(ctx context.Context, q request.PageQuery) (*respond.PageResult[model.Post], error) {
	supportive := true
	return p.list(ctx, repository.PostFilter{Supportive: &supportive}, q)
}

func (p *postService) list(ctx context.Context, filter repository.PostFilter, q request.PageQuery) (*respond.PageResult[model.Post], error) {
	page := pagination.New(q.Page, q.Limit, constants.DEFAULT_POST_LIMIT)
	posts, total, err := p.repos.Post.List(ctx, filter, page)
	if err != nil {
		return nil, fail("list posts", err)
	}
	return &respond.PageResult[model.Post]{Page: respond.NewPage(page, len(posts), total), Data: posts}, nil
}

func (p *postService) Update(ctx context.Context, id string, req request.UpdatePostRequest) (*model.Post, error) {
	id, ok := model.ParseID(id)
	if !ok {
		return nil, errInvalidID
	}
	post, err := p.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Mood != nil {
		post.Mood = *req.Mood
	}
	if req.Supportive != nil {
		post.Supportive = *req.Supportive
	}
	if req.Replies != nil {
		post.Replies = *req.Replies
	}
	post.User = nil
	if err := p.repos.Post.Update(ctx, post); err != nil {
		return nil, fail("update post", err)
	}
	return p.find(ctx, id)
}

func (p *postService) Delete(ctx context.Context, id string) error {
	id, ok := model.ParseID(id)
	if !ok {
		return errInvalidID
	}
	if err := p.repos.Post.Delete(ctx, id); err != nil {
		if errorx.IsNotFound(err) {
			return errNotFound
		}
		return fail("delete post", err)
	}
	return nil
}

// ToggleLike moves likes by exactly one. Decrements may go below zero.
func (p *postService) ToggleLike(ctx context.Context, id string, increment bool) (*model.Post, error) {
	id, ok := model.ParseID(id)
	if !ok {
		return nil, errInvalidID
	}
	delta := 1
	if !increment {
		delta = -1
	}
	if err := p.repos.Post.AddLikes(ctx, id, delta); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errNotFound
		}
		return nil, fail("toggle like", err)
	}
	return p.find(ctx, id)
}

func (p *postService) ToggleSupportive(ctx context.Context, id string) (*model.Post, error) {
	id, ok := model.ParseID(id)
	if !ok {
		return nil, errInvalidID
	}
	if err := p.repos.Post.ToggleSupportive(ctx, id); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errNotFound
		}
		return nil, fail("toggle supportive", err)
	}
	return p.find(ctx, id)
}

func (p *postService) find(ctx context.Context, id string) (*model.Post, error) {
	post, err := p.repos.Post.FindByID(ctx, id)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errNotFound
		}
		return nil, fail("find post", err)
	}
	return post, nil
}
