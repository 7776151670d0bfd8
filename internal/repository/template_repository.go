package repository

import (
	"github.com/smartcowork/cowork-gin/internal/model"
	"gorm.io/gorm"
)

// TemplateRepository is the work template store.
type TemplateRepository interface {
	Save(template *model.TemplateModel) error
	FindByID(id string) (*model.TemplateModel, error)
	FindAll() ([]*model.TemplateModel, error)
	DeleteByID(id string) error
}

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a template repository.
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Save(template *model.TemplateModel) error {
	return r.db.Save(template).Error
}

func (r *templateRepository) FindByID(id string) (*model.TemplateModel, error) {
	var template model.TemplateModel
	if err := r.db.Where("id = ?", id).First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) FindAll() ([]*model.TemplateModel, error) {
	var templates []*model.TemplateModel
	err := r.db.Order("created_at DESC").Find(&templates).Error
	return templates, err
}

func (r *templateRepository) DeleteByID(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.TemplateModel{}).Error
}
