package model

// clients
type User struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Login    string `gorm:"type:varchar(64);not null;uniqueIndex" json:"login"`
	Password string `gorm:"type:varchar(64);not null" json:"password"`

	FullName string `gorm:"type:varchar(255)" json:"fullName"`
	Phone    string `gorm:"type:varchar(32)" json:"phone"`

	Status Status `gorm:"type:int;not null;default:1" json:"status"`
}

func (User) TableName() string { return "clients" }
