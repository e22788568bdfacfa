package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reignagency/reign/internal/usecase"
)

type Booking struct {
	ID           uuid.UUID       `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	BrandName    string          `gorm:"column:brand_name;type:varchar(255);not null"`
	ContactName  string          `gorm:"column:contact_name;type:varchar(255)"`
	ShootDate    time.Time       `gorm:"column:shoot_date"`
	BookingHour  string          `gorm:"column:booking_hour;type:varchar(50)"`
	WANumber     string          `gorm:"column:wa_number;type:varchar(50)"`
	Email        string          `gorm:"column:email;type:varchar(255)"`
	DesiredModel string          `gorm:"column:desired_model;type:varchar(255)"`
	Usages       string          `gorm:"column:usages;type:varchar(255)"`
	Status       string          `gorm:"column:status;type:varchar(20);default:ongoing"`
	UserID       uuid.UUID       `gorm:"column:user_id;type:uuid"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
	DeletedAt    *gorm.DeletedAt `gorm:"column:deleted_at"`

	User *User `gorm:"foreignKey:UserID"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (s *service) ListBookings(ctx context.Context, opt usecase.ListBookingsOption) ([]usecase.Booking, int, error) {
	var (
		bookings []Booking
		count    int64
	)

	db := s.db.Model([]Booking{}).WithContext(ctx)

	if opt.Status != "" {
		db = db.Where("status = ?", opt.Status)
	}

	err := db.
		Joins("User").
		Count(&count).
		Limit(opt.Limit).
		Offset(opt.Skip).
		Find(&bookings).
		Error
	if err != nil {
		return nil, 0, err
	}

	list := make([]usecase.Booking, 0, len(bookings))
	for _, b := range bookings {
		ub := b.ConvertToUsecase()
		if b.User != nil {
			user := b.User.ConvertToUsecase()
			ub.User = &user
		}
		list = append(list, ub)
	}
	return list, int(count), nil
}

func (s *service) GetBookingByID(ctx context.Context, id uuid.UUID) (usecase.Booking, error) {
	var b Booking
	if err := s.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&b).Error; err != nil {
		return usecase.Booking{}, convertError(err)
	}

	booking := b.ConvertToUsecase()
	if b.User != nil {
		user := b.User.ConvertToUsecase()
		booking.User = &user
	}
	return booking, nil
}

func (s *service) CreateBooking(ctx context.Context, booking usecase.Booking) (usecase.Booking, error) {
	b := Booking{
		BrandName:    booking.BrandName,
		ContactName:  booking.ContactName,
		ShootDate:    booking.ShootDate,
		BookingHour:  booking.BookingHour,
		WANumber:     booking.WANumber,
		Email:        booking.Email,
		DesiredModel: booking.DesiredModel,
		Usages:       booking.Usages,
		Status:       booking.Status,
		UserID:       booking.UserID,
	}

	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		return usecase.Booking{}, err
	}
	return b.ConvertToUsecase(), nil
}

func (s *service) UpdateBooking(ctx context.Context, booking usecase.Booking) (usecase.Booking, error) {
	updates := map[string]any{
		"brand_name":    booking.BrandName,
		"contact_name":  booking.ContactName,
		"shoot_date":    booking.ShootDate,
		"booking_hour":  booking.BookingHour,
		"wa_number":     booking.WANumber,
		"email":         booking.Email,
		"desired_model": booking.DesiredModel,
		"usages":        booking.Usages,
		"status":        booking.Status,
	}

	res := s.db.WithContext(ctx).Model(&Booking{}).Where("id = ?", booking.ID).Updates(updates)
	if res.Error != nil {
		return usecase.Booking{}, res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.Booking{}, fmt.Errorf("%w: booking %s", usecase.ErrNotFound, booking.ID)
	}

	return s.GetBookingByID(ctx, booking.ID)
}

func (s *service) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Booking{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: booking %s", usecase.ErrNotFound, id)
	}
	return nil
}

// Convert core model to Usecase
func (b Booking) ConvertToUsecase() usecase.Booking {
	return usecase.Booking{
		ID:           b.ID,
		BrandName:    b.BrandName,
		ContactName:  b.ContactName,
		ShootDate:    b.ShootDate,
		BookingHour:  b.BookingHour,
		WANumber:     b.WANumber,
		Email:        b.Email,
		DesiredModel: b.DesiredModel,
		Usages:       b.Usages,
		Status:       b.Status,
		UserID:       b.UserID,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
