// Package database handles database connections and schema inspection.
//
// It wraps GORM and opens either a MySQL connection (production ERP database) or a
// SQLite database (tests and local runs) based on the application's configuration.
//
// # Connect
//
// Connect picks the dialector from Config.Driver, applies pool settings and pings
// the server within Config.TimeoutSeconds. The gorm logger is silent unless a
// WithLogger option is passed.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table. The integrity feature uses it to
// verify that the catalog tables match the models defined in feature/catalog/models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database, database.WithLogger(logger.NewGormLogger(log)))
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "items")
package database
