package models

import "time"

type Review struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:name;size:255;not null" json:"name"`
	Rating      int       `gorm:"column:rating;not null" json:"rating"`
	Comment     string    `gorm:"column:comment;type:text;not null" json:"comment"`
	ChannelType *string   `gorm:"column:channel_type;size:50" json:"channelType,omitempty"`
	Approved    bool      `gorm:"column:approved;not null;default:false;index" json:"approved"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;<-:create" json:"createdAt"`
}

func (Review) TableName() string {
	return "reviews"
}

type Opinion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Email     string    `gorm:"column:email;size:255;not null" json:"email"`
	Opinion   string    `gorm:"column:opinion;type:text;not null" json:"opinion"`
	Approved  bool      `gorm:"column:approved;not null;default:false;index" json:"approved"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;<-:create" json:"createdAt"`
}

func (Opinion) TableName() string {
	return "opinions"
}
