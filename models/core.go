package models

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/iconhive/IconHive/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() {
	var err error
	if config.DBType == "sqlite" {
		dbPath := config.SqlitePath
		if dbPath == "" {
			dbPath = filepath.Join(config.Download, "iconhive.db")
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), os.ModePerm); err != nil {
			log.Fatalf("创建存储目录失败: %v", err)
		}
		log.Printf("数据库路径: %s", dbPath)
		DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
	} else {
		DB, err = gorm.Open(postgres.Open(config.DSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// 批量迁移所有表
	if err := migrateAllTables(DB); err != nil {
		log.Printf("Failed to migrate tables: %v", err)
	}

	// 初始化默认用户
	initDefaultUser(DB)

	log.Println("数据库初始化成功")
}

// migrateAllTables 批量迁移所有表
func migrateAllTables(db *gorm.DB) error {
	models := []interface{}{
		&Icon{},
		&Repo{},
		&Project{},
		&RepoVersion{},
		&ProjectVersion{},
		&User{},
		&Log{},
	}

	return db.AutoMigrate(models...)
}

// initDefaultUser 初始化默认用户
func initDefaultUser(db *gorm.DB) {
	user := User{
		ID:    1,
		Token: "0",
		Name:  "本地",
	}

	var existingUser User
	result := db.First(&existingUser, user.ID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Failed to create default user: %v", err)
		} else {
			log.Println("Default user created successfully")
		}
	}
}
