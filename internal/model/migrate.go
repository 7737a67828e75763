package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей сервера записи.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Master{},
		&Admin{},
		&Purpose{},
		&Record{},
		&Event{},
	)
}
