package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rajendranagar-portal/internal/models"
)

// GormDB is the MySQL-backed Store implementation.
type GormDB struct {
	db *gorm.DB
}

func NewGormDB(host, port, user, password, dbname string) (*GormDB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, dbname)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, err
	}

	// Test connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &GormDB{db: db}, nil
}

// NewGormDBFromDB creates a GormDB wrapper from an existing gorm.DB instance.
func NewGormDBFromDB(db *gorm.DB) *GormDB {
	return &GormDB{db: db}
}

// DB returns the underlying gorm.DB instance.
func (gdb *GormDB) DB() *gorm.DB {
	return gdb.db
}

func (gdb *GormDB) Close() error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates tables using GORM AutoMigrate.
func (gdb *GormDB) InitSchema() error {
	return gdb.db.AutoMigrate(
		&PropertyRow{},
		&UserLimitRow{},
		&DeleteLog{},
	)
}

// InsertProperty persists a new listing row. The id and creation timestamp
// are assigned here, at insert time, never taken from the client.
func (gdb *GormDB) InsertProperty(row *PropertyRow) error {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}
	return gdb.db.Create(row).Error
}

func (gdb *GormDB) ActiveProperties(cutoff time.Time) ([]models.Property, error) {
	var rows []PropertyRow
	err := gdb.db.Where("created_at > ?", cutoff).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rowsToProperties(rows), nil
}

func (gdb *GormDB) ActivePropertiesByArea(area string, cutoff time.Time) ([]models.Property, error) {
	var rows []PropertyRow
	err := gdb.db.Where("area = ? AND created_at > ?", area, cutoff).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rowsToProperties(rows), nil
}

// PropertyByID fetches a listing regardless of the active window, so deep
// links to since-expired ads keep resolving.
func (gdb *GormDB) PropertyByID(id string) (*models.Property, error) {
	var row PropertyRow
	err := gdb.db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := RowToProperty(&row)
	return &p, nil
}

// PropertiesByOwner matches stored phones by 10-digit suffix so numbers
// saved with a country code still resolve. Expired listings are included;
// owners must be able to see and delete their old ads.
func (gdb *GormDB) PropertiesByOwner(mobile string) ([]models.Property, error) {
	var rows []PropertyRow
	err := gdb.db.Where(phoneMatchExpr("contact_phone"), "%"+mobile).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rowsToProperties(rows), nil
}

func (gdb *GormDB) CountActiveByOwner(mobile string, cutoff time.Time) (int64, error) {
	var count int64
	err := gdb.db.Model(&PropertyRow{}).
		Where(phoneMatchExpr("contact_phone"), "%"+mobile).
		Where("created_at > ?", cutoff).
		Count(&count).Error
	return count, err
}

// DeleteProperty removes a listing. A non-empty ownerMobile restricts the
// delete to rows whose phone suffix matches; the result does not distinguish
// "not found" from "not owned".
func (gdb *GormDB) DeleteProperty(id, ownerMobile string) (bool, error) {
	query := gdb.db.Where("id = ?", id)
	if ownerMobile != "" {
		query = query.Where(phoneMatchExpr("contact_phone"), "%"+ownerMobile)
	}
	result := query.Delete(&PropertyRow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (gdb *GormDB) CountActive(cutoff time.Time) (int64, error) {
	var count int64
	err := gdb.db.Model(&PropertyRow{}).
		Where("created_at > ?", cutoff).
		Count(&count).Error
	return count, err
}

// CountCreatedOn counts listings posted on a calendar day by matching the
// datetime rendered as text against a YYYY-MM-DD prefix.
func (gdb *GormDB) CountCreatedOn(datePrefix string) (int64, error) {
	var count int64
	err := gdb.db.Model(&PropertyRow{}).
		Where("CAST(created_at AS CHAR) LIKE ?", datePrefix+"%").
		Count(&count).Error
	return count, err
}

func (gdb *GormDB) TopAreas(cutoff time.Time, limit int) ([]models.AreaCount, error) {
	var stats []models.AreaCount
	err := gdb.db.Model(&PropertyRow{}).
		Select("area, count(*) as count").
		Where("created_at > ?", cutoff).
		Group("area").
		Order("count DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (gdb *GormDB) UserLimitByMobile(mobile string) (*models.UserLimit, error) {
	var row UserLimitRow
	err := gdb.db.Where(phoneMatchExpr("mobile"), "%"+mobile).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToUserLimit(&row), nil
}

// UpsertUserLimit updates an existing override in place, keeping whatever
// mobile key it was originally stored under, or inserts a fresh row keyed by
// the normalized mobile.
func (gdb *GormDB) UpsertUserLimit(mobile, tierName string, maxPosts int) error {
	var existing UserLimitRow
	err := gdb.db.Where(phoneMatchExpr("mobile"), "%"+mobile).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return gdb.db.Create(&UserLimitRow{
			Mobile:    mobile,
			TierName:  tierName,
			MaxPosts:  maxPosts,
			UpdatedAt: time.Now(),
		}).Error
	}
	if err != nil {
		return err
	}

	return gdb.db.Model(&UserLimitRow{}).
		Where("mobile = ?", existing.Mobile).
		Updates(map[string]interface{}{
			"tier_name":  tierName,
			"max_posts":  maxPosts,
			"updated_at": time.Now(),
		}).Error
}
