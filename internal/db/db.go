package db

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/promptlab/promptlab/internal/run"
)

// Open connects the run-job database and migrates its schema. Threads live
// as JSON files in the workspace; only operational job state goes here.
func Open(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := gdb.AutoMigrate(&run.Job{}); err != nil {
		return nil, err
	}
	return gdb, nil
}
