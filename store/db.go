package store

import (
	"time"

	"github.com/dutylog/dutylog/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// SaveSnapshot stores the live shift state so an interrupted shift can
	// be resumed after a restart.
	SaveSnapshot(snap *models.Snapshot) error
	// LoadSnapshot returns the stored shift state, or nil if no shift is
	// in progress.
	LoadSnapshot() (*models.Snapshot, error)
	// ClearSnapshot removes the stored shift state.
	ClearSnapshot() error
	// SaveShift stores a completed shift record. The record is created if
	// it doesn't exist already, or overwritten if it does.
	SaveShift(rec *models.ShiftRecord) error
	// GetShifts returns completed shifts within the time bounds.
	GetShifts(startTime, endTime time.Time) ([]models.ShiftRecord, error)
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}
