package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"guildPointsBot/models"
)

// GormStore keeps each document as one row of JSON in a documents table.
type GormStore struct {
	db *gorm.DB
}

// OpenDatabase connects to the SQL backend named by databaseURL. The URL
// scheme selects the driver: mysql://, sqlserver://, or sqlite:/file:.
func OpenDatabase(databaseURL string) (*gorm.DB, error) {
	u, err := dburl.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	var dialector gorm.Dialector
	switch u.Driver {
	case "mysql":
		dialector = mysql.Open(u.DSN + "?charset=utf8mb4&parseTime=True&loc=Local")
	case "sqlserver":
		dialector = sqlserver.Open(u.DSN)
	case "sqlite3":
		dialector = sqlite.Open(u.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", u.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Document{}, &models.Feedback{}); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return db, nil
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) Get(ctx context.Context, guildID, name string) ([]byte, bool, error) {
	var doc models.Document
	result := g.db.WithContext(ctx).
		Where("guild_id = ? AND name = ?", guildID, name).
		First(&doc)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if result.Error != nil {
		return nil, false, storeErr("get", guildID, name, result.Error)
	}
	return doc.Data, true, nil
}

func (g *GormStore) Set(ctx context.Context, guildID, name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return storeErr("set", guildID, name, err)
	}

	var doc models.Document
	result := g.db.WithContext(ctx).
		Where("guild_id = ? AND name = ?", guildID, name).
		First(&doc)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		doc = models.Document{GuildID: guildID, Name: name, Data: payload}
		if err := g.db.WithContext(ctx).Create(&doc).Error; err != nil {
			return storeErr("set", guildID, name, err)
		}
		return nil
	}
	if result.Error != nil {
		return storeErr("set", guildID, name, result.Error)
	}

	doc.Data = payload
	if err := g.db.WithContext(ctx).Save(&doc).Error; err != nil {
		return storeErr("set", guildID, name, err)
	}
	return nil
}

func (g *GormStore) AppendFeedback(ctx context.Context, fb models.Feedback) error {
	if err := g.db.WithContext(ctx).Create(&fb).Error; err != nil {
		return storeErr("append", fb.GuildID, "feedback", err)
	}
	return nil
}
