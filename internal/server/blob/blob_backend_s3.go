package blob

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var ErrInvalidKey = errors.New("invalid key")

type S3Backend struct {
	s3Client *s3.Client
	config   *S3Config
	hooks    *backendHooks
}

type backendHooks struct {
	AfterPutObject    func(*PutObjectParams, *PutObjectResponse)
	AfterDeleteObject func(key string, deleted bool)
}

func NewS3Backend(s3Client *s3.Client, cfg *S3Config) *S3Backend {
	return &S3Backend{
		s3Client: s3Client,
		config:   cfg,
		hooks:    &backendHooks{},
	}
}

func NewS3BackendWithConfig(cfg *S3Config) (*S3Backend, error) {
	httpClient := &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          200,
			MaxIdleConnsPerHost:   100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			ForceAttemptHTTP2:     true,
		},
		Timeout: 30 * time.Second,
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
		config.WithRegion(cfg.Region),
		config.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	awsClient := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3Backend(awsClient, cfg), nil
}

func (s *S3Backend) setHooks(hooks *backendHooks) {
	if hooks != nil {
		s.hooks.AfterPutObject = hooks.AfterPutObject
		s.hooks.AfterDeleteObject = hooks.AfterDeleteObject
	}
}

// PutObject stores one object with public-read visibility and returns its
// publicly resolvable URL. One call, no retry.
func (s *S3Backend) PutObject(ctx context.Context, params *PutObjectParams) (*PutObjectResponse, error) {
	if !ValidKey(params.Key) {
		return nil, ErrInvalidKey
	}

	s3Params := &s3.PutObjectInput{
		Bucket:        &s.config.BucketName,
		Key:           &params.Key,
		Body:          params.Body,
		ContentLength: aws.Int64(params.Size),
		ACL:           types.ObjectCannedACLPublicRead,
	}
	if params.ContentType != "" {
		s3Params.ContentType = aws.String(params.ContentType)
	}

	resp, err := s.s3Client.PutObject(ctx, s3Params)
	if err != nil {
		return nil, err
	}

	result := &PutObjectResponse{
		Key:          params.Key,
		Size:         params.Size,
		ETag:         strings.ReplaceAll(aws.ToString(resp.ETag), "\"", ""),
		URL:          s.PublicURL(params.Key),
		LastModified: time.Now().UTC(),
	}

	if s.hooks.AfterPutObject != nil {
		s.hooks.AfterPutObject(params, result)
	}

	return result, nil
}

func (s *S3Backend) DeleteObject(ctx context.Context, key string) (bool, error) {
	if !ValidKey(key) {
		return false, ErrInvalidKey
	}
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.config.BucketName,
		Key:    &key,
	})
	if err != nil {
		return false, err
	}
	if s.hooks.AfterDeleteObject != nil {
		s.hooks.AfterDeleteObject(key, true)
	}
	return true, nil
}

func (s *S3Backend) ListObjects(ctx context.Context) ([]*ObjectInfo, error) {
	var objects []*ObjectInfo

	paginator := s3.NewListObjectsV2Paginator(s.s3Client, &s3.ListObjectsV2Input{
		Bucket: &s.config.BucketName,
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, obj := range page.Contents {
			objects = append(objects, &ObjectInfo{
				Key:          aws.ToString(obj.Key),
				ETag:         strings.ReplaceAll(aws.ToString(obj.ETag), "\"", ""),
				Size:         aws.ToInt64(obj.Size),
				LastModified: obj.LastModified.Format(time.RFC3339),
			})
		}
	}

	return objects, nil
}

func (s *S3Backend) Ping(ctx context.Context) error {
	_, err := s.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: &s.config.BucketName,
	})
	return err
}

// PublicURL builds the public link for a stored object.
func (s *S3Backend) PublicURL(key string) string {
	if s.config.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.PublicBaseURL, "/"), key)
	}
	if s.config.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.config.Endpoint, "/"), s.config.BucketName, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.BucketName, s.config.Region, key)
}

var _ Backend = (*S3Backend)(nil)
