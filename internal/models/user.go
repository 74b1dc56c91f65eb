package models

import "time"

type User struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	EmployeeID     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"employee_id"`
	Username       string    `gorm:"type:varchar(255);not null" json:"username"`
	FirstName      string    `gorm:"type:varchar(255)" json:"first_name"`
	LastName       string    `gorm:"type:varchar(255)" json:"last_name"`
	PasswordHash   string    `gorm:"type:varchar(255);not null" json:"-"`
	IsAdmin        bool      `gorm:"not null;default:false;index" json:"is_admin"`
	AssignedToolID *uint64   `gorm:"index" json:"assigned_tool_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullName is "first last" when both are set, otherwise the username.
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

func (u *User) IsAuthenticated() bool { return true }

func (u *User) IsAdministrator() bool { return u.IsAdmin }

func (u *User) AssignedTool() (uint64, bool) {
	if u.AssignedToolID == nil || *u.AssignedToolID == 0 {
		return 0, false
	}
	return *u.AssignedToolID, true
}

func (u *User) DisplayName() string { return u.FullName() }

func (u *User) Subject() uint64 { return u.ID }
