package repository

import (
	"github.com/smartcowork/cowork-gin/internal/model"
	"gorm.io/gorm"
)

// RequestRepository is the data-collection request store.
type RequestRepository interface {
	Save(request *model.RequestModel) error
	FindByID(id string) (*model.RequestModel, error)
	FindAll() ([]*model.RequestModel, error)
	DeleteByID(tx *gorm.DB, id string) error
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a request repository.
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Save(request *model.RequestModel) error {
	return r.db.Save(request).Error
}

func (r *requestRepository) FindByID(id string) (*model.RequestModel, error) {
	var request model.RequestModel
	if err := r.db.Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// FindAll returns every request, newest first. Target visibility is filtered
// in the service: target ids live in a JSON column and the full set is small,
// as in the original console.
func (r *requestRepository) FindAll() ([]*model.RequestModel, error) {
	var requests []*model.RequestModel
	err := r.db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// DeleteByID deletes inside the caller-supplied transaction so the service
// can pair it with the response sweep atomically.
func (r *requestRepository) DeleteByID(tx *gorm.DB, id string) error {
	return tx.Where("id = ?", id).Delete(&model.RequestModel{}).Error
}
