// Package storage persists desktop sessions in SQLite through gorm.
//
// The driver is the pure-Go glebarez/sqlite dialector, so the server builds
// without cgo. The schema is created with AutoMigrate on Open.
package storage
