package repository

import (
	"errors"
	"time"

	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
	"gorm.io/gorm"
)

const insertBatchSize = 100

// GormToolRepository is a GORM implementation of ToolRepository
type GormToolRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewToolRepository creates a new ToolRepository
func NewToolRepository(db *gorm.DB) ToolRepository {
	return &GormToolRepository{db: db, now: time.Now}
}

// List returns every tool ordered by id
func (r *GormToolRepository) List() ([]models.Tool, error) {
	tools := []models.Tool{}
	if err := r.db.Order("id ASC").Find(&tools).Error; err != nil {
		return nil, err
	}
	return tools, nil
}

// FindByID finds a tool by ID
func (r *GormToolRepository) FindByID(id uint64) (*models.Tool, error) {
	var tool models.Tool
	if err := r.db.First(&tool, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, err
	}
	return &tool, nil
}

// ReplaceAll deletes every tool and inserts rows in order within one transaction.
// Ids are reassigned 1..n, so readers never observe a partially loaded table.
func (r *GormToolRepository) ReplaceAll(rows []models.Tool, opts ReplaceOptions) ([]models.Tool, error) {
	now := r.now()
	tools := make([]models.Tool, len(rows))
	for i, row := range rows {
		row.ID = uint64(i + 1)
		row.LastUpdated = now
		tools[i] = row
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Tool{}).Error; err != nil {
			return err
		}

		if len(tools) > 0 {
			if err := tx.CreateInBatches(&tools, insertBatchSize).Error; err != nil {
				return err
			}
		}

		if opts.ClearOrphanedAssignments {
			err := tx.Model(&models.User{}).
				Where("assigned_tool_id IS NOT NULL AND assigned_tool_id NOT IN (?)", tx.Model(&models.Tool{}).Select("id")).
				Update("assigned_tool_id", nil).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return tools, nil
}

// UpdateStatus overwrites the status fields of a tool and stamps last_updated
func (r *GormToolRepository) UpdateStatus(id uint64, update ToolUpdate) (*models.Tool, error) {
	values := map[string]interface{}{
		"current_status": update.CurrentStatus,
		"next_action":    update.NextAction,
		"eta":            update.ETA,
		"last_updated":   r.now(),
	}
	if update.ResponsibleParty != nil {
		values["responsible_party"] = *update.ResponsibleParty
	}

	result := r.db.Model(&models.Tool{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrToolNotFound
	}

	return r.FindByID(id)
}

// Count returns the number of tools
func (r *GormToolRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Tool{}).Count(&count).Error
	return count, err
}
