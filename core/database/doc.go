// Package database handles database connections for the emulator's sql backend.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections
// from the application's configuration, with pool limits and a startup ping
// bounded by the configured timeout.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
