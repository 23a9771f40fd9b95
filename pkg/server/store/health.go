package store

// HealthStore backs the /status check.
type HealthStore interface {
	// CheckConnectivity pings the database.
	CheckConnectivity() error
}
