package db

import (
	"iea/src/config"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func GetDb() *gorm.DB {
	if db != nil {
		return db
	}
	// TranslateError so duplicate-key violations surface as
	// gorm.ErrDuplicatedKey regardless of driver.
	_db, err := gorm.Open(postgres.Open(config.GetDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Printf("Error connecting to database: %s\n", err.Error())
		panic(err)
	}
	sqlDB, err := _db.DB()
	if err != nil {
		log.Fatalf("Error establishing connection to database: %s\n", err.Error())
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	db = _db
	return _db
}

func NewDB(newdb *gorm.DB) {
	db = newdb
}
