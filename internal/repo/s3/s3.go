package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/nimbus-sync/nimbus/internal/config"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type UploadFileRequest struct {
	Name        string
	File        []byte
	ContentType string
}

type Service interface {
	UploadFile(ctx context.Context, req *UploadFileRequest) (string, error)
}

type Storage struct {
	cli    *minio.Client
	bucket string
}

func New(conf config.MinioConfig) *Storage {
	cli, err := minio.New(
		conf.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
			Secure: conf.UseSSL,
		},
	)
	if err != nil {
		zap.L().Fatal("failed to connect to minio", zap.Error(err))
	}

	ctx := context.Background()
	exists, err := cli.BucketExists(ctx, conf.Bucket)
	if err != nil {
		zap.L().Fatal("failed to check bucket", zap.Error(err))
	}

	if !exists {
		if err = cli.MakeBucket(ctx, conf.Bucket, minio.MakeBucketOptions{}); err != nil {
			zap.L().Fatal("failed to create bucket", zap.Error(err))
		}
	}

	return &Storage{cli: cli, bucket: conf.Bucket}
}

func (s *Storage) UploadFile(ctx context.Context, req *UploadFileRequest) (string, error) {
	const op = "s3.UploadFile.repo"

	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	name := fmt.Sprintf("%s-%s", uuid.NewString(), req.Name)
	_, err := s.cli.PutObject(
		ctx, s.bucket, name,
		bytes.NewReader(req.File), int64(len(req.File)),
		minio.PutObjectOptions{ContentType: req.ContentType},
	)
	if err != nil {
		zap.L().Error("failed to upload file", zap.String("name", name), zap.Error(err))
		return "", err
	}

	return fmt.Sprintf("/%s/%s", s.bucket, name), nil
}
