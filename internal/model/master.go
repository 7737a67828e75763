package model

// Master — представитель услуг (парикмахер, барбер и т.п.).
// Та же форма, что и User, плюс специализация.
type Master struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Login    string `gorm:"type:varchar(64);not null;uniqueIndex" json:"login"`
	Password string `gorm:"type:varchar(64);not null" json:"password"`

	FullName string `gorm:"type:varchar(255)" json:"fullName"`
	Phone    string `gorm:"type:varchar(32)" json:"phone"`

	// Краткое описание, специализация и т.п.
	Specialization string `gorm:"type:text" json:"specialization"`

	Status Status `gorm:"type:int;not null;default:1" json:"status"`
}

func (Master) TableName() string { return "masters" }
