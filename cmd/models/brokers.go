package models

import "time"

// BrokerSubscriber logs a broker referral registration.
type BrokerSubscriber struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"column:name;size:255;not null" json:"name"`
	Email         string    `gorm:"column:email;size:255;not null" json:"email"`
	AccountNumber string    `gorm:"column:account_number;size:100;not null" json:"accountNumber"`
	BrokerName    string    `gorm:"column:broker_name;size:255;not null;index" json:"brokerName"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime;<-:create" json:"createdAt"`
}

func (BrokerSubscriber) TableName() string {
	return "broker_subscribers"
}
