package repository

import (
	"context"

	"mindful_server/internal/model"
	"mindful_server/pkg/errorx"
	"mindful_server/pkg/util/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// withOwner joins the owner's public fields.
func withOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	})
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error; err != nil {
		return wrapDBError(err, "create booking")
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).Scopes(withOwner).First(&booking, "id = ?", id).Error; err != nil {
		return nil, wrapDBError(err, "Session not found")
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter, page pagination.Page) ([]model.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Booking{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "count bookings")
	}
	var bookings []model.Booking
	err := query.Scopes(withOwner, paginate(page)).
		Order("date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, 0, wrapDBError(err, "list bookings")
	}
	return bookings, total, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(booking).Error; err != nil {
		return wrapDBErrorf(err, "update booking id=%s", booking.ID)
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Booking{}, "id = ?", id)
	if result.Error != nil {
		return wrapDBErrorf(result.Error, "delete booking id=%s", id)
	}
	if result.RowsAffected == 0 {
		return errorx.New(errorx.CodeNotFound, "Session not found")
	}
	return nil
}
