package store

import (
	"context"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MySQL mirrors runs and features into a MySQL database through gorm.
type MySQL struct {
	db *gorm.DB
}

// NewMySQL connects and migrates the runs and game_features tables.
func NewMySQL(dsn string) (*MySQL, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Run{}, &FeatureRecord{}); err != nil {
		return nil, err
	}
	return &MySQL{db: db}, nil
}

func (m *MySQL) RecordRun(ctx context.Context, r Run) error {
	return m.db.WithContext(ctx).Create(&r).Error
}

func (m *MySQL) RecordFeatures(ctx context.Context, recs []FeatureRecord) error {
	if len(recs) == 0 {
		return nil
	}
	return m.db.WithContext(ctx).CreateInBatches(recs, 500).Error
}

func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
