package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reignagency/reign/internal/usecase"
)

type Model struct {
	ID         uuid.UUID       `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name       string          `gorm:"column:name;type:varchar(255);not null"`
	Slug       string          `gorm:"column:slug;type:varchar(255);not null;uniqueIndex"`
	IGUsername string          `gorm:"column:ig_username;type:varchar(255)"`
	Gender     string          `gorm:"column:gender;type:varchar(50)"`
	Height     int             `gorm:"column:height;type:int"`
	Bust       int             `gorm:"column:bust;type:int"`
	Waist      int             `gorm:"column:waist;type:int"`
	Hips       int             `gorm:"column:hips;type:int"`
	ShoeSize   int             `gorm:"column:shoe_size;type:int"`
	Hair       string          `gorm:"column:hair;type:varchar(50)"`
	Eyes       string          `gorm:"column:eyes;type:varchar(50)"`
	CoverImg   string          `gorm:"column:cover_img;type:varchar(512)"`
	Status     string          `gorm:"column:status;type:varchar(20);default:active"`
	UserID     uuid.UUID       `gorm:"column:user_id;type:uuid"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
	DeletedAt  *gorm.DeletedAt `gorm:"column:deleted_at"`

	Assets []Asset `gorm:"foreignKey:ModelID"`
}

func (Model) TableName() string {
	return "models"
}

func (s *service) ListModels(ctx context.Context, opt usecase.ListModelsOption) ([]usecase.Model, int, error) {
	var (
		models []Model
		count  int64
	)

	db := s.db.Model([]Model{}).WithContext(ctx)

	if opt.Status != "" {
		db = db.Where("status = ?", opt.Status)
	}

	err := db.
		Count(&count).
		Limit(opt.Limit).
		Offset(opt.Skip).
		Find(&models).
		Error
	if err != nil {
		return nil, 0, err
	}

	list := make([]usecase.Model, 0, len(models))
	for _, m := range models {
		list = append(list, m.ConvertToUsecase())
	}
	return list, int(count), nil
}

func (s *service) GetModelByID(ctx context.Context, id uuid.UUID) (usecase.Model, error) {
	var m Model
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return usecase.Model{}, convertError(err)
	}
	return m.ConvertToUsecase(), nil
}

func (s *service) GetModelBySlug(ctx context.Context, slug string) (usecase.Model, error) {
	var m Model
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		return usecase.Model{}, convertError(err)
	}
	return m.ConvertToUsecase(), nil
}

func (s *service) CreateModel(ctx context.Context, model usecase.Model) (usecase.Model, error) {
	m := Model{
		Name:       model.Name,
		Slug:       model.Slug,
		IGUsername: model.IGUsername,
		Gender:     model.Gender,
		Height:     model.Height,
		Bust:       model.Bust,
		Waist:      model.Waist,
		Hips:       model.Hips,
		ShoeSize:   model.ShoeSize,
		Hair:       model.Hair,
		Eyes:       model.Eyes,
		CoverImg:   model.CoverImg,
		Status:     model.Status,
		UserID:     model.UserID,
	}

	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return usecase.Model{}, err
	}
	return m.ConvertToUsecase(), nil
}

func (s *service) UpdateModel(ctx context.Context, model usecase.Model) (usecase.Model, error) {
	updates := map[string]any{
		"name":        model.Name,
		"slug":        model.Slug,
		"ig_username": model.IGUsername,
		"gender":      model.Gender,
		"height":      model.Height,
		"bust":        model.Bust,
		"waist":       model.Waist,
		"hips":        model.Hips,
		"shoe_size":   model.ShoeSize,
		"hair":        model.Hair,
		"eyes":        model.Eyes,
		"cover_img":   model.CoverImg,
		"status":      model.Status,
	}

	res := s.db.WithContext(ctx).Model(&Model{}).Where("id = ?", model.ID).Updates(updates)
	if res.Error != nil {
		return usecase.Model{}, res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.Model{}, fmt.Errorf("%w: model %s", usecase.ErrNotFound, model.ID)
	}

	return s.GetModelByID(ctx, model.ID)
}

func (s *service) DeleteModel(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Model{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: model %s", usecase.ErrNotFound, id)
	}
	return nil
}

// Convert core model to Usecase
func (m Model) ConvertToUsecase() usecase.Model {
	var d *time.Time
	if m.DeletedAt != nil {
		d = &m.DeletedAt.Time
	}
	return usecase.Model{
		ID:         m.ID,
		Name:       m.Name,
		Slug:       m.Slug,
		IGUsername: m.IGUsername,
		Gender:     m.Gender,
		Height:     m.Height,
		Bust:       m.Bust,
		Waist:      m.Waist,
		Hips:       m.Hips,
		ShoeSize:   m.ShoeSize,
		Hair:       m.Hair,
		Eyes:       m.Eyes,
		CoverImg:   m.CoverImg,
		Status:     m.Status,
		UserID:     m.UserID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		DeletedAt:  d,
	}
}
