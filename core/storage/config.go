package storage

// Config holds configuration for the object storage holding namespace backups.
type Config struct {
	// Endpoint is the host (and optional scheme) of the S3 compatible service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket receives the snapshot objects.
	Bucket string `mapstructure:"bucket" default:"kv-backups"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Prefix is the object name prefix under which snapshots are written.
	Prefix string `mapstructure:"prefix" default:"backups"`
	// Concurrency bounds parallel API calls during export and restore.
	Concurrency int `mapstructure:"concurrency" default:"8"`
}
