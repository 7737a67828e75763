package model

import (
	"time"

	"gorm.io/datatypes"
)

// Тип события аудита.
type EventType string

const (
	EventTypeClientRegistered EventType = "client_registered"
	EventTypeMasterRegistered EventType = "master_registered"
	EventTypeRecordCreated    EventType = "record_created"
	EventTypeRecordAccepted   EventType = "record_accepted"
	EventTypeRecordReleased   EventType = "record_released"
	EventTypeStatusChanged    EventType = "status_changed"
)

// events — события аудита
type Event struct {
	ID uint `gorm:"primaryKey;autoIncrement"`

	EventType EventType `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time `gorm:"not null;index"`

	// Произвольные детали события в виде JSON.
	Details datatypes.JSON
}

func (Event) TableName() string { return "events" }
