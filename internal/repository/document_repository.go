package repository

import (
	"github.com/smartcowork/cowork-gin/internal/model"
	"gorm.io/gorm"
)

// DocumentRepository is the formal document store.
type DocumentRepository interface {
	Save(document *model.DocumentModel) error
	FindByID(id string) (*model.DocumentModel, error)
	FindAll() ([]*model.DocumentModel, error)
	DeleteByID(id string) error
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Save(document *model.DocumentModel) error {
	return r.db.Save(document).Error
}

func (r *documentRepository) FindByID(id string) (*model.DocumentModel, error) {
	var document model.DocumentModel
	if err := r.db.Where("id = ?", id).First(&document).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) FindAll() ([]*model.DocumentModel, error) {
	var documents []*model.DocumentModel
	err := r.db.Order("created_at DESC").Find(&documents).Error
	return documents, err
}

func (r *documentRepository) DeleteByID(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.DocumentModel{}).Error
}
