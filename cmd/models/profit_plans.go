package models

import "time"

// ProfitPlanFile is an uploaded plan document. PlanAmount is a lookup key,
// never used in arithmetic.
type ProfitPlanFile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PlanAmount  string    `gorm:"column:plan_amount;size:50;not null;index" json:"plan_amount"`
	FileURL     string    `gorm:"column:file_url;size:500;not null" json:"file_url"`
	FileName    string    `gorm:"column:file_name;size:255;not null" json:"file_name"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;<-:create" json:"created_at"`
}

func (ProfitPlanFile) TableName() string {
	return "profit_plan_files"
}
