package models

import "time"

// SettlementLock guards a settlement pass: the unique index on Name means
// only one pass can hold the row at a time. No gorm.Model here so deletes
// are hard deletes and a released lock never lingers as a soft-deleted row.
type SettlementLock struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"uniqueIndex; size:64"`
	Token      string `gorm:"size:64"`
	AcquiredAt time.Time
}
