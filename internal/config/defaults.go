package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "planning_db",
}

var defaultRedis = Redis{
	PendingTTL: 30 * time.Second,
}

var defaultKafka = Kafka{
	GroupID: "rdv-planning",
	Topic:   "orders-events",
}

var defaultPlanning = Planning{
	OperationTimeout:   3 * time.Second,
	RateLimitPerMinute: 120,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultRedis returns the default cache settings.
func DefaultRedis() Redis {
	return defaultRedis
}

// DefaultKafka returns the default consumer settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultPlanning returns the default domain settings.
func DefaultPlanning() Planning {
	return defaultPlanning
}
