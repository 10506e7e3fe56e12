package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tableorderhq/tableorder/internal/common"
	sc "github.com/tableorderhq/tableorder/internal/server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Upload scopes accepted by GetUploadURL.
const (
	MediaScopeAvatar = "avatar"
	MediaScopeMenu   = "menu"
)

// MediaService hands out presigned URLs for the S3-compatible media bucket.
// Rows only ever store the object key; display URLs are minted on demand.
type MediaService struct {
	config *sc.Config
	stores *StoreService
}

func NewMediaService(cfg *sc.Config, stores *StoreService) *MediaService {
	return &MediaService{config: cfg, stores: stores}
}

func (s *MediaService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// storageKey builds a caller-scoped object key so one account cannot write
// into another's prefix.
func (s *MediaService) storageKey(ctx context.Context, userID, scope string) (string, error) {
	switch scope {
	case MediaScopeAvatar:
		return fmt.Sprintf("users/%s/%v", userID, uuid.New()), nil
	case MediaScopeMenu:
		store, err := s.stores.GetStore(ctx, userID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("menus/%s/%v", store.ID, uuid.New()), nil
	default:
		return "", common.ErrorValidation
	}
}

// GetUploadURL returns a fresh storage key for the scope plus a presigned
// PUT URL valid for 15 minutes.
func (s *MediaService) GetUploadURL(ctx context.Context, userID, scope string) (string, string, error) {
	key, err := s.storageKey(ctx, userID, scope)
	if err != nil {
		return "", "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// GetDisplayURL returns a presigned GET URL for a stored key.
func (s *MediaService) GetDisplayURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", common.ErrorValidation
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
