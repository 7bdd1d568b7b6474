package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"huddle/internal/apperr"
	"huddle/internal/models"
)

type SpaceStore struct{ db *gorm.DB }

func NewSpaceStore(db *gorm.DB) *SpaceStore { return &SpaceStore{db: db} }

type CreateSpaceInput struct {
	Name        string
	Size        int
	Description *string
}

func (s *SpaceStore) Create(ctx context.Context, in CreateSpaceInput) (*models.Space, error) {
	sp := models.Space{
		SpaceID:     uuid.New(),
		Name:        in.Name,
		Size:        in.Size,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&sp).Error; err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *SpaceStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Space, error) {
	var sp models.Space
	err := s.db.WithContext(ctx).Where("space_id = ?", id).First(&sp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("space not found")
	}
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

type SpaceFilter struct {
	Page  int
	Limit int
	Name  string
	Size  int
}

func (s *SpaceStore) List(ctx context.Context, f SpaceFilter) ([]models.Space, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	q := s.db.WithContext(ctx).Model(&models.Space{})
	if f.Name != "" {
		q = q.Where("name ILIKE ?", "%"+f.Name+"%")
	}
	if f.Size > 0 {
		q = q.Where("size = ?", f.Size)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	spaces := []models.Space{}
	err := q.Order("created_at desc").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&spaces).Error
	return spaces, total, err
}

type UpdateSpaceInput struct {
	Name        *string
	Size        *int
	Description *string
}

func (s *SpaceStore) Update(ctx context.Context, id uuid.UUID, in UpdateSpaceInput) (*models.Space, error) {
	patch := map[string]any{}
	if in.Name != nil {
		patch["name"] = *in.Name
	}
	if in.Size != nil {
		patch["size"] = *in.Size
	}
	if in.Description != nil {
		patch["description"] = *in.Description
	}
	if len(patch) == 0 {
		return nil, apperr.Validation("no parameters provided")
	}

	res := s.db.WithContext(ctx).Model(&models.Space{}).Where("space_id = ?", id).Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("space not found")
	}
	return s.GetByID(ctx, id)
}

func (s *SpaceStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("space_id = ?", id).Delete(&models.Space{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("space not found")
	}
	return nil
}
