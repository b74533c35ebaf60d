package database

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"academy/models"
)

// userRow is the relational shape of a user. Nested collections are
// stored as JSON columns.
type userRow struct {
	ID              string `gorm:"primaryKey"`
	Email           string `gorm:"uniqueIndex"`
	PinHash         string
	Role            string
	EnrolledCourses datatypes.JSON
	PendingUnlocks  datatypes.JSON
	EnrollmentDates datatypes.JSON
	LastActive      string
}

type courseRow struct {
	ID             string `gorm:"primaryKey"`
	Title          string
	Description    string
	Instructor     string
	Thumbnail      string
	Category       string
	Price          int
	IsFree         bool
	Videos         datatypes.JSON
	YoutubeChannel string
}

type batchRow struct {
	ID        string `gorm:"primaryKey"`
	CourseID  string
	Title     string
	StartDate string
	Timings   string
	Mode      string
	Status    string
}

// blobRow holds singleton JSON documents: platform settings and the
// session restoration key.
type blobRow struct {
	Key  string `gorm:"primaryKey"`
	Data datatypes.JSON
}

const (
	settingsKey = "settings"
	sessionKey  = "session"
)

// SQLiteBackend persists snapshots into a single SQLite file via GORM.
// Saves replace the whole collection in a transaction, matching the
// snapshot semantics of the other backends.
type SQLiteBackend struct {
	db *gorm.DB
}

// NewSQLiteBackend opens (and migrates) the database file.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&userRow{}, &courseRow{}, &batchRow{}, &blobRow{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) LoadUsers() ([]models.User, error) {
	var rows []userRow
	if err := b.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		user := models.User{
			ID:         row.ID,
			Email:      row.Email,
			PinHash:    row.PinHash,
			Role:       row.Role,
			LastActive: row.LastActive,
		}
		if err := fromJSONColumn(row.EnrolledCourses, &user.EnrolledCourses); err != nil {
			return nil, err
		}
		if err := fromJSONColumn(row.PendingUnlocks, &user.PendingUnlocks); err != nil {
			return nil, err
		}
		if err := fromJSONColumn(row.EnrollmentDates, &user.EnrollmentDates); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (b *SQLiteBackend) SaveUsers(users []models.User) error {
	rows := make([]userRow, 0, len(users))
	for _, user := range users {
		row := userRow{
			ID:         user.ID,
			Email:      user.Email,
			PinHash:    user.PinHash,
			Role:       user.Role,
			LastActive: user.LastActive,
		}
		var err error
		if row.EnrolledCourses, err = toJSONColumn(user.EnrolledCourses); err != nil {
			return err
		}
		if row.PendingUnlocks, err = toJSONColumn(user.PendingUnlocks); err != nil {
			return err
		}
		if row.EnrollmentDates, err = toJSONColumn(user.EnrollmentDates); err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return replaceAll(b.db, &userRow{}, rows)
}

func (b *SQLiteBackend) LoadCourses() ([]models.Course, error) {
	var rows []courseRow
	if err := b.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(rows))
	for _, row := range rows {
		course := models.Course{
			ID:             row.ID,
			Title:          row.Title,
			Description:    row.Description,
			Instructor:     row.Instructor,
			Thumbnail:      row.Thumbnail,
			Category:       row.Category,
			Price:          row.Price,
			IsFree:         row.IsFree,
			YoutubeChannel: row.YoutubeChannel,
		}
		if err := fromJSONColumn(row.Videos, &course.Videos); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func (b *SQLiteBackend) SaveCourses(courses []models.Course) error {
	rows := make([]courseRow, 0, len(courses))
	for _, course := range courses {
		row := courseRow{
			ID:             course.ID,
			Title:          course.Title,
			Description:    course.Description,
			Instructor:     course.Instructor,
			Thumbnail:      course.Thumbnail,
			Category:       course.Category,
			Price:          course.Price,
			IsFree:         course.IsFree,
			YoutubeChannel: course.YoutubeChannel,
		}
		var err error
		if row.Videos, err = toJSONColumn(course.Videos); err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return replaceAll(b.db, &courseRow{}, rows)
}

func (b *SQLiteBackend) LoadBatches() ([]models.Batch, error) {
	var rows []batchRow
	if err := b.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	batches := make([]models.Batch, 0, len(rows))
	for _, row := range rows {
		batches = append(batches, models.Batch{
			ID:        row.ID,
			CourseID:  row.CourseID,
			Title:     row.Title,
			StartDate: row.StartDate,
			Timings:   row.Timings,
			Mode:      row.Mode,
			Status:    row.Status,
		})
	}
	return batches, nil
}

func (b *SQLiteBackend) SaveBatches(batches []models.Batch) error {
	rows := make([]batchRow, 0, len(batches))
	for _, batch := range batches {
		rows = append(rows, batchRow{
			ID:        batch.ID,
			CourseID:  batch.CourseID,
			Title:     batch.Title,
			StartDate: batch.StartDate,
			Timings:   batch.Timings,
			Mode:      batch.Mode,
			Status:    batch.Status,
		})
	}
	return replaceAll(b.db, &batchRow{}, rows)
}

func (b *SQLiteBackend) LoadSettings() (*models.PlatformSettings, error) {
	settings := &models.PlatformSettings{}
	found, err := b.loadBlob(settingsKey, settings)
	if err != nil || !found {
		return nil, err
	}
	return settings, nil
}

func (b *SQLiteBackend) SaveSettings(settings *models.PlatformSettings) error {
	if settings == nil {
		return nil
	}
	return b.saveBlob(settingsKey, settings)
}

func (b *SQLiteBackend) LoadSession() (*models.User, error) {
	user := &models.User{}
	found, err := b.loadBlob(sessionKey, user)
	if err != nil || !found {
		return nil, err
	}
	return user, nil
}

func (b *SQLiteBackend) SaveSession(user *models.User) error {
	if user == nil {
		return b.db.Delete(&blobRow{Key: sessionKey}).Error
	}
	return b.saveBlob(sessionKey, user)
}

func (b *SQLiteBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (b *SQLiteBackend) loadBlob(key string, out interface{}) (bool, error) {
	var row blobRow
	err := b.db.First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(row.Data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (b *SQLiteBackend) saveBlob(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return b.db.Save(&blobRow{Key: key, Data: data}).Error
}

// replaceAll swaps the full contents of a table inside a transaction.
func replaceAll[T any](db *gorm.DB, model *T, rows []T) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func toJSONColumn(value interface{}) (datatypes.JSON, error) {
	if value == nil {
		return datatypes.JSON("null"), nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func fromJSONColumn(column datatypes.JSON, out interface{}) error {
	if len(column) == 0 {
		return nil
	}
	return json.Unmarshal(column, out)
}
