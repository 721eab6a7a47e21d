package model

type User struct {
	UserID    int    `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Name      string `gorm:"size:128;not null" json:"name"`
	Email     string `gorm:"size:255;not null" json:"email"`
	Phone     string `gorm:"size:32" json:"phone"`
	CreatedAt Date   `gorm:"type:text;autoCreateTime:false" json:"created_at"`
}

func (User) TableName() string { return "users" }
