package models

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Subscription is a channel or program registration. Status transitions and
// the start/end dates are managed by an administrator outside this API.
type Subscription struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	Name                  string     `gorm:"column:name;size:255;not null" json:"name"`
	Email                 string     `gorm:"column:email;size:255;not null;index" json:"email"`
	TelegramUsername      string     `gorm:"column:telegram_username;size:255;not null" json:"telegram_username"`
	ChannelType           string     `gorm:"column:channel_type;size:50;not null;index" json:"channel_type"`
	SubscriptionDuration  string     `gorm:"column:subscription_duration;size:50;not null" json:"subscription_duration"`
	PlanAmount            *string    `gorm:"column:plan_amount;size:50" json:"plan_amount,omitempty"`
	IDDocumentURL         string     `gorm:"column:id_document_url;size:500;not null" json:"id_document_url"`
	TermsAccepted         bool       `gorm:"column:terms_accepted;not null" json:"terms_accepted"`
	Status                string     `gorm:"column:status;size:20;not null;default:pending;index" json:"status"`
	SubscriptionStartDate *time.Time `gorm:"column:subscription_start_date" json:"subscription_start_date"`
	SubscriptionEndDate   *time.Time `gorm:"column:subscription_end_date" json:"subscription_end_date"`
	TotalMonths           int        `gorm:"column:total_months;not null;default:0" json:"total_months"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime;<-:create" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
