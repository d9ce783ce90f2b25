package domain

import "time"

type Client struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CompanyName    string    `gorm:"size:255;not null;index" json:"company_name"`
	CompanyContact string    `gorm:"size:255" json:"company_contact"`
	ABN            string    `gorm:"column:abn;size:11" json:"abn"`
	ContactEmail   string    `gorm:"size:255" json:"contact_email"`
	ContactPhone   string    `gorm:"size:255" json:"contact_phone"`
	Address        string    `gorm:"size:1024" json:"address"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
