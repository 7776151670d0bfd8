package repository

import (
	"github.com/smartcowork/cowork-gin/internal/model"
	"gorm.io/gorm"
)

// ApprovalRepository is the work approval request store.
type ApprovalRepository interface {
	Save(approval *model.ApprovalModel) error
	FindByID(id string) (*model.ApprovalModel, error)
	FindInvolving(employeeID string) ([]*model.ApprovalModel, error)
	UpdateStatus(id, status string) error
	DeleteByID(id string) error
}

type approvalRepository struct {
	db *gorm.DB
}

// NewApprovalRepository creates an approval repository.
func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Save(approval *model.ApprovalModel) error {
	return r.db.Save(approval).Error
}

func (r *approvalRepository) FindByID(id string) (*model.ApprovalModel, error) {
	var approval model.ApprovalModel
	if err := r.db.Where("id = ?", id).First(&approval).Error; err != nil {
		return nil, err
	}
	return &approval, nil
}

// FindInvolving returns approvals where the employee is requester or
// processor, newest first. Same or-filter the console issued.
func (r *approvalRepository) FindInvolving(employeeID string) ([]*model.ApprovalModel, error) {
	var approvals []*model.ApprovalModel
	err := r.db.Where("requester_id = ? OR processor_id = ?", employeeID, employeeID).
		Order("created_at DESC").
		Find(&approvals).Error
	return approvals, err
}

func (r *approvalRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&model.ApprovalModel{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *approvalRepository) DeleteByID(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.ApprovalModel{}).Error
}
