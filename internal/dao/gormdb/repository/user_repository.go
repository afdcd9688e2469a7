package repository

import (
	"context"

	"mindful_server/internal/model"
	"mindful_server/pkg/errorx"
	"mindful_server/pkg/util/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var userListColumns = []string{"id", "name", "email", "mood", "created_at"}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return wrapDBError(err, "create user")
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapDBError(err, "User not found")
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapDBError(err, "User not found")
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, page pagination.Page) ([]model.User, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&model.User{}), page)
}

func (r *userRepository) ListByMood(ctx context.Context, mood string, page pagination.Page) ([]model.User, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&model.User{}).Where("mood = ?", mood), page)
}

func (r *userRepository) list(query *gorm.DB, page pagination.Page) ([]model.User, int64, error) {
	query = query.Session(&gorm.Session{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "count users")
	}
	var users []model.User
	err := query.Select(userListColumns).
		Order("created_at DESC").
		Scopes(paginate(page)).
		Find(&users).Error
	if err != nil {
		return nil, 0, wrapDBError(err, "list users")
	}
	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return wrapDBErrorf(err, "update user id=%s", user.ID)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if result.Error != nil {
		return wrapDBErrorf(result.Error, "delete user id=%s", id)
	}
	if result.RowsAffected == 0 {
		return errorx.New(errorx.CodeNotFound, "User not found")
	}
	return nil
}

func (r *userRepository) AppendMood(ctx context.Context, entry *model.MoodEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return wrapDBErrorf(err, "append mood user id=%s", entry.UserID)
	}
	return nil
}

func (r *userRepository) MoodHistory(ctx context.Context, userID string) ([]model.MoodEntry, error) {
	var entries []model.MoodEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&entries).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "mood history user id=%s", userID)
	}
	return entries, nil
}

func (r *userRepository) BookingIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "booking ids user id=%s", userID)
	}
	return ids, nil
}
