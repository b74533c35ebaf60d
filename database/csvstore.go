package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"academy/models"
	"academy/utils"
)

// CSV file names inside the data directory.
const (
	usersFile    = "users.csv"
	coursesFile  = "courses.csv"
	batchesFile  = "batches.csv"
	settingsFile = "settings.csv"
	sessionFile  = "session.json"
)

// CSVBackend persists each collection as a CSV file in a directory.
// Every save rewrites the whole file; there is no partial-write
// recovery, a crash mid-write can corrupt a file.
type CSVBackend struct {
	dir string
}

// NewCSVBackend creates the data directory if needed.
func NewCSVBackend(dir string) (*CSVBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &CSVBackend{dir: dir}, nil
}

func (b *CSVBackend) LoadUsers() ([]models.User, error) {
	return loadCollection[models.User](b, usersFile)
}

func (b *CSVBackend) SaveUsers(users []models.User) error {
	return saveCollection(b, usersFile, users)
}

func (b *CSVBackend) LoadCourses() ([]models.Course, error) {
	return loadCollection[models.Course](b, coursesFile)
}

func (b *CSVBackend) SaveCourses(courses []models.Course) error {
	return saveCollection(b, coursesFile, courses)
}

func (b *CSVBackend) LoadBatches() ([]models.Batch, error) {
	return loadCollection[models.Batch](b, batchesFile)
}

func (b *CSVBackend) SaveBatches(batches []models.Batch) error {
	return saveCollection(b, batchesFile, batches)
}

func (b *CSVBackend) LoadSettings() (*models.PlatformSettings, error) {
	items, err := loadCollection[models.PlatformSettings](b, settingsFile)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

func (b *CSVBackend) SaveSettings(settings *models.PlatformSettings) error {
	if settings == nil {
		return nil
	}
	return saveCollection(b, settingsFile, []models.PlatformSettings{*settings})
}

func (b *CSVBackend) LoadSession() (*models.User, error) {
	data, err := os.ReadFile(filepath.Join(b.dir, sessionFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse %s: %w", sessionFile, err)
	}
	return &user, nil
}

func (b *CSVBackend) SaveSession(user *models.User) error {
	path := filepath.Join(b.dir, sessionFile)
	if user == nil {
		err := os.Remove(path)
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (b *CSVBackend) Close() error { return nil }

// saveCollection serializes entities through JSON into uniform records
// and writes them as one CSV file.
func saveCollection[T any](b *CSVBackend, name string, items []T) error {
	records, err := recordsFromEntities(items)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", name, err)
	}
	text, err := utils.EncodeCSV(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return os.WriteFile(filepath.Join(b.dir, name), []byte(text), 0644)
}

// loadCollection reads one CSV file back into entities. A missing or
// empty file is an empty collection, not an error.
func loadCollection[T any](b *CSVBackend, name string) ([]T, error) {
	data, err := os.ReadFile(filepath.Join(b.dir, name))
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	records, err := utils.DecodeCSV(string(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return entitiesFromRecords[T](records)
}

// recordsFromEntities flattens typed entities into generic records via
// their JSON form, so CSV encoding sees plain maps.
func recordsFromEntities[T any](items []T) ([]map[string]interface{}, error) {
	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		var rec map[string]interface{}
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// stringFields are entity fields that must stay strings even when a
// value happens to look numeric (an id of "101", a title of "2024").
// CSV type inference is schema-less; the entity schema knows better.
var stringFields = map[string]bool{
	"id": true, "email": true, "pinHash": true, "role": true, "lastActive": true,
	"title": true, "description": true, "instructor": true, "thumbnail": true,
	"category": true, "youtubeChannel": true,
	"courseId": true, "startDate": true, "timings": true, "mode": true, "status": true,
	"paymentQrCode": true, "upiId": true, "contactNumber": true,
}

func entitiesFromRecords[T any](records []map[string]interface{}) ([]T, error) {
	items := make([]T, 0, len(records))
	for _, rec := range records {
		// Decoded empty strings stand in for absent fields; drop them
		// so typed defaults apply instead of failing to unmarshal.
		for key, value := range rec {
			if s, ok := value.(string); ok && s == "" {
				delete(rec, key)
				continue
			}
			if !stringFields[key] {
				continue
			}
			switch v := value.(type) {
			case float64:
				rec[key] = strconv.FormatFloat(v, 'f', -1, 64)
			case bool:
				rec[key] = strconv.FormatBool(v)
			}
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
