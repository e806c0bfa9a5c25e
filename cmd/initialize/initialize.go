package initialize

import (
	"os"
	"strings"
	"time"

	"github.com/denismitr/goenv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"suzurigw/storage"
	"suzurigw/storage/localstorage"
	"suzurigw/storage/s3storage"
	"suzurigw/suzuri"
)

// DotEnv loads a local .env file when one exists. Deployed environments
// configure through real environment variables instead.
func DotEnv() {
	_ = godotenv.Load()
}

func Logger() *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr
	log.Formatter = &logrus.TextFormatter{
		TimestampFormat: time.StampMilli,
		FullTimestamp:   true,
	}

	return log
}

func SuzuriClientFromEnv(log *logrus.Logger) *suzuri.Client {
	cfg := suzuri.Config{
		BaseURL: os.Getenv("SUZURI_BASE_URL"),
		APIKey:  goenv.MustString("SUZURI_API_KEY"),
		Timeout: 30 * time.Second,
	}

	return suzuri.New(cfg, log)
}

// StorageFromEnv picks the upload backend: local disk by default, S3 when
// S3_ENABLED is truthy.
func StorageFromEnv() storage.Storage {
	if !goenv.IsTruthy("S3_ENABLED") {
		return localstorage.New(localstorage.Config{Dir: os.Getenv("UPLOAD_DIR")})
	}

	return s3storage.New(s3storage.Config{
		AccessKey:        goenv.MustString("S3_ACCESS_KEY_ID"),
		AccessSecret:     goenv.MustString("S3_SECRET_ACCESS_KEY"),
		Region:           goenv.MustString("S3_REGION"),
		Endpoint:         os.Getenv("S3_ENDPOINT"),
		Bucket:           goenv.MustString("S3_BUCKET"),
		S3ForcePathStyle: goenv.IsTruthy("S3_FORCE_PATH_STYLE"),
		DisableSSL:       !goenv.IsTruthy("S3_SSL"),
	})
}

func Port() string {
	port := os.Getenv("GATEWAY_PORT")
	if port == "" {
		return ":3000"
	}

	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return port
}
