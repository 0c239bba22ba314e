package config

// StorageConfig contains file storage (S3) configuration for logo, photo,
// and CV assets.
type StorageConfig struct {
	Region    string `env:"S3_REGION"     envDefault:"us-east-1"`
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	// Endpoint overrides the S3 endpoint for MinIO-style deployments.
	Endpoint string `env:"S3_ENDPOINT"`
	// UsePathStyle enables path-style addressing, required by MinIO.
	UsePathStyle bool `env:"S3_USE_PATH_STYLE" envDefault:"false"`
}
