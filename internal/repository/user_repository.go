package repository

import (
	"errors"

	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user. The employee id check and the insert share a
// transaction; the unique index catches anything that slips between them.
func (r *GormUserRepository) Create(user *models.User) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("employee_id = ?", user.EmployeeID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmployeeIDTaken
		}

		return tx.Create(user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmployeeIDTaken
	}
	return err
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmployeeID finds a user by employee id
func (r *GormUserRepository) FindByEmployeeID(employeeID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("employee_id = ?", employeeID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns admins first, then by username
func (r *GormUserRepository) List() ([]models.User, error) {
	users := []models.User{}
	if err := r.db.Order("is_admin DESC").Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies a partial update
func (r *GormUserRepository) Update(id uint64, changes UserChanges) (*models.User, error) {
	user, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	if changes.Username != nil {
		values["username"] = *changes.Username
	}
	if changes.FirstName != nil {
		values["first_name"] = *changes.FirstName
	}
	if changes.LastName != nil {
		values["last_name"] = *changes.LastName
	}
	if changes.IsAdmin != nil {
		values["is_admin"] = *changes.IsAdmin
	}
	if changes.PasswordHash != nil {
		values["password_hash"] = *changes.PasswordHash
	}
	if changes.UpdateAssignment {
		values["assigned_tool_id"] = changes.AssignedToolID
	}

	if len(values) == 0 {
		return user, nil
	}

	if err := r.db.Model(user).Updates(values).Error; err != nil {
		return nil, err
	}

	return r.FindByID(id)
}

// Delete removes a user
func (r *GormUserRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// CountAdmins counts users with the admin flag
func (r *GormUserRepository) CountAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error
	return count, err
}
