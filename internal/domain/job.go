package domain

import "time"

const (
	RateTypeHourly = "hourly"
	RateTypeDaily  = "daily"

	TargetTypeClient       = "client"
	TargetTypeClientClient = "client_client"
)

type Job struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ClientID      uint      `gorm:"not null;index" json:"client_id"`
	Client        *Client   `gorm:"constraint:OnDelete:CASCADE" json:"client,omitempty"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	Location      string    `gorm:"size:255" json:"location"`
	Rate          *float64  `json:"rate,omitempty"`
	RateType      string    `gorm:"size:16;not null;default:hourly" json:"rate_type"`
	TargetType    string    `gorm:"size:16;not null;default:client" json:"target_type"`
	TargetName    string    `gorm:"size:255" json:"target_name"`
	StartTime     *string   `gorm:"size:8" json:"start_time,omitempty"`
	EndTime       *string   `gorm:"size:8" json:"end_time,omitempty"`
	Had30MinBreak bool      `gorm:"column:had_30min_break;not null;default:false" json:"had_30min_break"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
