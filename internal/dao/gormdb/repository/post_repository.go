package repository

import (
	"context"

	"mindful_server/internal/model"
	"mindful_server/pkg/errorx"
	"mindful_server/pkg/util/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withAuthor loads the author summary. Email and mood are public on the
// community feed; timestamps and history are not.
func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email", "mood")
	})
}

// Create inserts only the post row; a preloaded author is never written back.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return wrapDBError(err, "create post")
	}
	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Scopes(withAuthor).First(&post, "id = ?", id).Error; err != nil {
		return nil, wrapDBError(err, "Post not found")
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, page pagination.Page) ([]model.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Post{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Mood != "" {
		query = query.Where("mood = ?", filter.Mood)
	}
	if filter.Supportive != nil {
		query = query.Where("supportive = ?", *filter.Supportive)
	}
	// Count and Find each get a fresh statement built from the same filters
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "count posts")
	}
	var posts []model.Post
	err := query.Scopes(withAuthor, paginate(page)).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, 0, wrapDBError(err, "list posts")
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return wrapDBErrorf(err, "update post id=%s", post.ID)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.affectOne(r.db.WithContext(ctx).Delete(&model.Post{}, "id = ?", id), "delete post id=%s", id)
}

// AddLikes applies delta in a single UPDATE. There is no floor; likes can go
// negative.
func (r *postRepository) AddLikes(ctx context.Context, id string, delta int) error {
	result := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", delta))
	return r.affectOne(result, "update likes post id=%s", id)
}

// ToggleSupportive flips the flag in SQL, so two toggles always cancel out.
func (r *postRepository) ToggleSupportive(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("supportive", gorm.Expr("NOT supportive"))
	return r.affectOne(result, "toggle supportive post id=%s", id)
}

// affectOne turns "no row matched" into a not-found error.
func (r *postRepository) affectOne(result *gorm.DB, format string, id string) error {
	if result.Error != nil {
		return wrapDBErrorf(result.Error, format, id)
	}
	if result.RowsAffected == 0 {
		return errorx.New(errorx.CodeNotFound, "Post not found")
	}
	return nil
}
