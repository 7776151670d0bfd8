package repository

import (
	"errors"

	"github.com/smartcowork/cowork-gin/internal/model"
	"gorm.io/gorm"
)

// ResponseRepository is the per-target response store.
type ResponseRepository interface {
	Save(response *model.ResponseModel) error
	FindByID(id string) (*model.ResponseModel, error)
	FindByRequestID(requestID string) ([]*model.ResponseModel, error)
	FindByRequestAndTarget(requestID, targetID string) (*model.ResponseModel, error)
	DeleteByID(id string) error
	DeleteByRequestID(tx *gorm.DB, requestID string) error
}

type responseRepository struct {
	db *gorm.DB
}

// NewResponseRepository creates a response repository.
func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Save(response *model.ResponseModel) error {
	return r.db.Save(response).Error
}

func (r *responseRepository) FindByID(id string) (*model.ResponseModel, error) {
	var response model.ResponseModel
	if err := r.db.Where("id = ?", id).First(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindByRequestID(requestID string) ([]*model.ResponseModel, error) {
	var responses []*model.ResponseModel
	err := r.db.Where("request_id = ?", requestID).
		Order("submitted_at DESC").
		Find(&responses).Error
	return responses, err
}

// FindByRequestAndTarget returns nil, nil when no response exists for the
// pair; that is the "not submitted" case, not an error.
func (r *responseRepository) FindByRequestAndTarget(requestID, targetID string) (*model.ResponseModel, error) {
	var response model.ResponseModel
	err := r.db.Where("request_id = ? AND target_id = ?", requestID, targetID).
		First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) DeleteByID(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.ResponseModel{}).Error
}

// DeleteByRequestID deletes inside the caller-supplied transaction.
func (r *responseRepository) DeleteByRequestID(tx *gorm.DB, requestID string) error {
	return tx.Where("request_id = ?", requestID).Delete(&model.ResponseModel{}).Error
}
