package model

import "time"

// Record — запись клиента на услугу. Мастер не назначен, пока
// кто-то из мастеров не примет запись себе; явного поля статуса нет,
// состояние вычисляется по (MasterID, Time).
type Record struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	PurposeID uint  `gorm:"not null;index" json:"purposeId"`
	ClientID  uint  `gorm:"not null;index" json:"clientId"`
	MasterID  *uint `gorm:"index" json:"masterId,omitempty"`

	Time time.Time `gorm:"not null;index" json:"time"`
}

func (Record) TableName() string { return "records" }

// Accepted — запись принята каким-то мастером.
func (r *Record) Accepted() bool { return r.MasterID != nil }

// Current — мастер назначен и время визита ещё впереди.
func (r *Record) Current(now time.Time) bool {
	return r.Accepted() && r.Time.After(now)
}

// History — время визита уже прошло.
func (r *Record) History(now time.Time) bool {
	return !r.Time.After(now)
}
