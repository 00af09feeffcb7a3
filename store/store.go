// Package store connects to the data store and manages shift snapshots and
// completed shift records
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/dutylog/dutylog/internal/models"
	"github.com/dutylog/dutylog/internal/timeutil"
)

const (
	snapshotBucket = "snapshot"
	shiftsBucket   = "shifts"

	// snapshotKey is the single key under which the live shift state lives.
	snapshotKey = "current"
)

var pathToDB string

var errDutylogRunning = errors.New(
	"is dutylog already running? Only one instance can be active at a time",
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func (c *Client) SaveSnapshot(snap *models.Snapshot) error {
	value, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(snapshotBucket)).
			Put([]byte(snapshotKey), value)
	})
}

func (c *Client) LoadSnapshot() (*models.Snapshot, error) {
	var snap *models.Snapshot

	err := c.View(func(tx *bolt.Tx) error {
		snapBytes := tx.Bucket([]byte(snapshotBucket)).
			Get([]byte(snapshotKey))
		if len(snapBytes) == 0 {
			// no shift in progress
			return nil
		}

		snap = &models.Snapshot{}

		return json.Unmarshal(snapBytes, snap)
	})

	return snap, err
}

func (c *Client) ClearSnapshot() error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(snapshotBucket)).Delete([]byte(snapshotKey))
	})
}

func (c *Client) SaveShift(rec *models.ShiftRecord) error {
	key := timeutil.ToKey(rec.StartTime)

	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(shiftsBucket)).Put(key, value)
	})
}

func (c *Client) GetShifts(
	startTime, endTime time.Time,
) ([]models.ShiftRecord, error) {
	var b [][]byte

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(shiftsBucket)).Cursor()
		min := timeutil.ToKey(startTime)
		max := timeutil.ToKey(endTime)

		for k, v := cur.Seek(min); k != nil && bytes.Compare(k, max) <= 0; k, v = cur.Next() {
			b = append(b, v)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	var recs []models.ShiftRecord

	for _, v := range b {
		rec := models.ShiftRecord{}

		err = json.Unmarshal(v, &rec)
		if err != nil {
			return nil, err
		}

		recs = append(recs, rec)
	}

	return recs, nil
}

func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		db,
	}

	return nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errDutylogRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}
	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(snapshotBucket))
		if err != nil {
			return err
		}

		_, err = tx.CreateBucketIfNotExists([]byte(shiftsBucket))

		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
