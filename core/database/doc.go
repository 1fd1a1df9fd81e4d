// Package database handles the optional connection used for run history.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that opens
// either a SQLite file (the default, no server required) or a MySQL database
// based on the application's configuration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("history database: %w", err)
//	}
package database
