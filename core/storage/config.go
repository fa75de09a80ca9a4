package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// PrivateBucket holds attachments referenced as /private/files/<name>.
	PrivateBucket string `mapstructure:"private_bucket" default:"erp-private"`
	// PublicBucket holds attachments referenced as /files/<name>.
	PublicBucket string `mapstructure:"public_bucket" default:"erp-public"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Buckets returns the configured buckets, private first.
func (c Config) Buckets() []string {
	return []string{c.PrivateBucket, c.PublicBucket}
}
