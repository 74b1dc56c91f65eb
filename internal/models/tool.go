package models

import "time"

// Tool is a manufacturing asset tracked on the dashboard.
// Only the current status is kept; updates overwrite it.
type Tool struct {
	ID               uint64    `gorm:"primarykey;autoIncrement:false" json:"id"`
	Name             string    `gorm:"column:mfg_tool_name;type:varchar(255);not null" json:"mfg_tool_name"`
	CurrentStatus    string    `gorm:"type:varchar(255);not null" json:"current_status"`
	NextAction       string    `gorm:"type:text;not null" json:"next_action"`
	ResponsibleParty string    `gorm:"type:varchar(255);not null" json:"responsible_party"`
	ETA              string    `gorm:"column:eta;type:varchar(255);not null" json:"eta"`
	LastUpdated      time.Time `gorm:"not null" json:"last_updated"`
}
