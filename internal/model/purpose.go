package model

// Purpose — услуга, на которую можно записаться (название и цена).
type Purpose struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Name string `gorm:"type:varchar(255);not null" json:"name"`
	Cost int    `gorm:"not null" json:"cost"`
}

func (Purpose) TableName() string { return "purposes" }
