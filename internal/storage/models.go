package storage

import "time"

// Entry is one persisted key. Value holds the JSON document.
type Entry struct {
	Name      string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}
