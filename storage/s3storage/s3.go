package s3storage

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"

	"suzurigw/storage"
)

type Config struct {
	AccessKey        string
	AccessSecret     string
	Region           string
	Endpoint         string
	Bucket           string
	S3ForcePathStyle bool
	DisableSSL       bool
}

// RemoteStorage uploads files into a single pre-existing S3 bucket.
type RemoteStorage struct {
	cfg      Config
	s3Config *aws.Config
}

func New(cfg Config) *RemoteStorage {
	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.AccessSecret, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		Region:           aws.String(cfg.Region),
		DisableSSL:       aws.Bool(cfg.DisableSSL),
		S3ForcePathStyle: aws.Bool(cfg.S3ForcePathStyle),
	}

	return &RemoteStorage{cfg: cfg, s3Config: s3Config}
}

func (rs *RemoteStorage) Put(ctx context.Context, filename string, source io.Reader) (*storage.Item, error) {
	sess, err := session.NewSession(rs.s3Config)
	if err != nil {
		return nil, errors.Wrapf(storage.ErrStorageFailed, "s3 session could not be created: %v", err)
	}

	uploader := s3manager.NewUploader(sess)
	uploader.Concurrency = 1

	result, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Body:   source,
		Bucket: aws.String(rs.cfg.Bucket),
		Key:    aws.String(filename),
	})
	if err != nil {
		return nil, errors.Wrapf(
			storage.ErrStorageFailed,
			"could not upload file %s to bucket %s: %v",
			filename, rs.cfg.Bucket, err,
		)
	}

	return &storage.Item{
		Path: rs.cfg.Bucket + "/" + filename,
		URL:  result.Location,
	}, nil
}
