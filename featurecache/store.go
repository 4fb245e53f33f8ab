// Package featurecache persists fetched tracks and audio features in SQLite
// so repeated runs over the same playlist skip the catalog round trips.
package featurecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/katalvlaran/sonicpath/features"
)

// DefaultPath is the cache file used when none is configured.
const DefaultPath = "sonicpath-cache.sqlite3"

// lookupChunk bounds the number of ids bound into one IN (...) query.
const lookupChunk = 500

// ErrClosed is returned by methods on a nil or closed Store.
var ErrClosed = errors.New("featurecache: store is closed")

// TrackRow is one cached track with its audio features.
type TrackRow struct {
	ID         string   `gorm:"primaryKey;type:varchar(64)"`
	Name       string   `gorm:"not null;default:''"`
	Artists    []string `gorm:"serializer:json"`
	Album      string
	DurationMs int

	Acousticness     float64
	Danceability     float64
	FeatureDuration  float64
	Energy           float64
	Instrumentalness float64
	Key              float64
	Liveness         float64
	Loudness         float64
	Speechiness      float64
	Tempo            float64
	TimeSignature    float64
	Valence          float64

	UpdatedAt time.Time `gorm:"index:idx_track_updated"`
}

func newRow(t features.Track, v features.Vector) TrackRow {
	f := features.FromVector(t.ID, v)
	return TrackRow{
		ID:               t.ID,
		Name:             t.Name,
		Artists:          t.Artists,
		Album:            t.Album,
		DurationMs:       t.DurationMs,
		Acousticness:     f.Acousticness,
		Danceability:     f.Danceability,
		FeatureDuration:  f.DurationMs,
		Energy:           f.Energy,
		Instrumentalness: f.Instrumentalness,
		Key:              f.Key,
		Liveness:         f.Liveness,
		Loudness:         f.Loudness,
		Speechiness:      f.Speechiness,
		Tempo:            f.Tempo,
		TimeSignature:    f.TimeSignature,
		Valence:          f.Valence,
	}
}

// Track returns the catalog record stored in r.
func (r TrackRow) Track() features.Track {
	return features.Track{ID: r.ID, Name: r.Name, Artists: r.Artists, Album: r.Album, DurationMs: r.DurationMs}
}

// Vector returns the feature vector stored in r.
func (r TrackRow) Vector() features.Vector {
	return features.AudioFeatures{
		Acousticness:     r.Acousticness,
		Danceability:     r.Danceability,
		DurationMs:       r.FeatureDuration,
		Energy:           r.Energy,
		Instrumentalness: r.Instrumentalness,
		Key:              r.Key,
		Liveness:         r.Liveness,
		Loudness:         r.Loudness,
		Speechiness:      r.Speechiness,
		Tempo:            r.Tempo,
		TimeSignature:    r.TimeSignature,
		Valence:          r.Valence,
	}.Vector()
}

// Store is a gorm-backed SQLite cache of TrackRows.
type Store struct {
	db    *gorm.DB
	sqlDB *sql.DB
	ttl   time.Duration
	now   func() time.Time
}

// Open opens (creating if needed) the cache at path. Rows older than ttl are
// treated as missing; ttl <= 0 keeps rows forever.
func Open(path string, ttl time.Duration) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("featurecache: create dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("featurecache: open %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("featurecache: get sql.DB: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if err = db.AutoMigrate(&TrackRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("featurecache: auto migrate: %w", err)
	}

	return &Store{db: db, sqlDB: sqlDB, ttl: ttl, now: time.Now}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	err := s.sqlDB.Close()
	s.sqlDB, s.db = nil, nil
	return err
}

// Get returns the fresh row for id, or gorm.ErrRecordNotFound.
func (s *Store) Get(ctx context.Context, id string) (TrackRow, error) {
	if s == nil || s.db == nil {
		return TrackRow{}, ErrClosed
	}
	var row TrackRow
	q := s.db.WithContext(ctx).Where("id = ?", id)
	if s.ttl > 0 {
		q = q.Where("updated_at >= ?", s.now().Add(-s.ttl))
	}
	if err := q.First(&row).Error; err != nil {
		return TrackRow{}, err
	}
	return row, nil
}

// GetMany returns the fresh rows among ids, keyed by id. Missing ids are
// simply absent from the map.
func (s *Store) GetMany(ctx context.Context, ids []string) (map[string]TrackRow, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	out := make(map[string]TrackRow, len(ids))
	for lo := 0; lo < len(ids); lo += lookupChunk {
		hi := min(lo+lookupChunk, len(ids))
		var rows []TrackRow
		q := s.db.WithContext(ctx).Where("id IN ?", ids[lo:hi])
		if s.ttl > 0 {
			q = q.Where("updated_at >= ?", s.now().Add(-s.ttl))
		}
		if err := q.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("featurecache: query rows: %w", err)
		}
		for _, r := range rows {
			out[r.ID] = r
		}
	}
	return out, nil
}

// PutMany upserts one row per (track, vector) pair.
func (s *Store) PutMany(ctx context.Context, tracks []features.Track, vecs []features.Vector) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	if err := features.ValidateAligned(tracks, vecs); err != nil {
		return err
	}
	if len(tracks) == 0 {
		return nil
	}
	rows := make([]TrackRow, len(tracks))
	now := s.now()
	for i := range tracks {
		rows[i] = newRow(tracks[i], vecs[i])
		rows[i].UpdatedAt = now
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(rows, 200).Error
	if err != nil {
		return fmt.Errorf("featurecache: upsert rows: %w", err)
	}
	return nil
}

// Delete removes id from the cache. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&TrackRow{}).Error; err != nil {
		return fmt.Errorf("featurecache: delete %q: %w", id, err)
	}
	return nil
}

// Prune deletes rows older than the store's ttl and returns how many were
// removed. It is a no-op without a ttl.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}
	if s.ttl <= 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("updated_at < ?", s.now().Add(-s.ttl)).Delete(&TrackRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("featurecache: prune: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Count returns the number of cached rows, fresh or not.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&TrackRow{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("featurecache: count: %w", err)
	}
	return n, nil
}
