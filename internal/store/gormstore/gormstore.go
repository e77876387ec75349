package gormstore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pharma-service/internal/model"
	"pharma-service/internal/store"
)

// recordRow is one persisted document. The record body is kept as JSON so the
// free-form collections need no per-field columns; lookups go through the
// (collection, record_id) unique index.
type recordRow struct {
	ID         uint   `gorm:"primaryKey"`
	Collection string `gorm:"size:32;uniqueIndex:idx_collection_record"`
	RecordID   string `gorm:"size:64;uniqueIndex:idx_collection_record"`
	Document   []byte
}

func (recordRow) TableName() string {
	return "records"
}

// collectionRow marks a collection as initialized. Seeding checks this table
// rather than counting records, so an emptied collection is not mistaken for
// one that was never set up.
type collectionRow struct {
	Name string `gorm:"primaryKey;size:32"`
}

func (collectionRow) TableName() string {
	return "collections"
}

// Store implements the persistence contract on an embedded sqlite database
type Store struct {
	db   *gorm.DB
	opts store.Options
}

// New opens (or creates) the database file and migrates the record tables
func New(path string, opts store.Options) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.AutoMigrate(&recordRow{}, &collectionRow{}); err != nil {
		return nil, fmt.Errorf("migrate record tables: %w", err)
	}
	return &Store{db: db, opts: opts}, nil
}

func decode(row recordRow) (model.Record, error) {
	var rec model.Record
	if err := json.Unmarshal(row.Document, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s/%s: %w", row.Collection, row.RecordID, err)
	}
	return rec, nil
}

func (s *Store) List(collection string) ([]model.Record, error) {
	var rows []recordRow
	if err := s.db.Where("collection = ?", collection).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := decode(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) Get(collection, id string) (model.Record, error) {
	var row recordRow
	err := s.db.Where("collection = ? AND record_id = ?", collection, id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(row)
}

func (s *Store) Create(collection string, fields model.Record) (model.Record, error) {
	id := store.NewID(func(candidate string) bool {
		var count int64
		s.db.Model(&recordRow{}).
			Where("collection = ? AND record_id = ?", collection, candidate).
			Count(&count)
		return count > 0
	})
	rec := store.BuildRecord(collection, id, fields, s.opts)

	doc, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	row := recordRow{Collection: collection, RecordID: id, Document: doc}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := touchCollection(tx, collection); err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) Update(collection, id string, fields model.Record) (model.Record, error) {
	var row recordRow
	err := s.db.Where("collection = ? AND record_id = ?", collection, id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	existing, err := decode(row)
	if err != nil {
		return nil, err
	}
	rec := store.ApplyUpdate(collection, existing, fields, s.opts)

	doc, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	row.Document = doc
	row.RecordID = rec.ID()
	if err := s.db.Save(&row).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) Delete(collection, id string) error {
	res := s.db.Where("collection = ? AND record_id = ?", collection, id).Delete(&recordRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Replace(collection string, records []model.Record) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := touchCollection(tx, collection); err != nil {
			return err
		}
		if err := tx.Where("collection = ?", collection).Delete(&recordRow{}).Error; err != nil {
			return err
		}
		for _, rec := range records {
			doc, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			row := recordRow{Collection: collection, RecordID: rec.ID(), Document: doc}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func touchCollection(tx *gorm.DB, collection string) error {
	row := collectionRow{Name: collection}
	return tx.FirstOrCreate(&row, collectionRow{Name: collection}).Error
}

func (s *Store) Exists(collection string) (bool, error) {
	var count int64
	if err := s.db.Model(&collectionRow{}).Where("name = ?", collection).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ store.Store = (*Store)(nil)
