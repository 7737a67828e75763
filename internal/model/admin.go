package model

// admins — заводятся при старте сервера, меняются редко.
type Admin struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Login    string `gorm:"type:varchar(64);not null;uniqueIndex" json:"login"`
	Password string `gorm:"type:varchar(64);not null" json:"password"`
}

func (Admin) TableName() string { return "admins" }
