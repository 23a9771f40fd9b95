// Package db opens the PostgreSQL database behind a hydra server.
//
//	database, err := db.Connect(db.Config{Logger: log})
//
// Connect reads DATABASE_URL unless Config.URL is set. HYDRA_DEBUG=true
// routes SQL statements through the logrus logger at debug level.
// Schema migrations are embedded in the db/migrations directory at the
// repository root and applied by hydractl db migrate.
package db
