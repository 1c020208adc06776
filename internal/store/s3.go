package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store keeps each document as a JSON object in an S3-compatible
// bucket under a key prefix.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
	locks  *keyLocks
}

// NewS3Store builds an S3-backed store. If endpoint is non-empty,
// path-style addressing is enabled (for MinIO and similar).
func NewS3Store(ctx context.Context, bucket, prefix, region, endpoint string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, storageErr("aws config", bucket, err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Store{
		client: s3.NewFromConfig(cfg, s3opts...),
		bucket: bucket,
		prefix: prefix,
		locks:  newKeyLocks(),
	}, nil
}

func (s *S3Store) objectKey(key string) string {
	return s.prefix + key + fileExt
}

// Load reads the document at key; a missing object leaves out untouched.
func (s *S3Store) Load(ctx context.Context, key string, out interface{}) error {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil
		}
		return storageErr("get object", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return storageErr("read object", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return storageErr("decode", key, err)
	}
	return nil
}

// Save overwrites the document at key.
func (s *S3Store) Save(ctx context.Context, key string, doc interface{}) error {
	lock := s.locks.forKey(key)
	lock.Lock()
	defer lock.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return storageErr("encode", key, err)
	}
	contentType := "application/json"
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        strings.NewReader(string(data)),
		ContentType: &contentType,
	})
	if err != nil {
		return storageErr("put object", key, err)
	}
	return nil
}

// ListKeys returns the stored keys beginning with prefix.
func (s *S3Store) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix + prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, storageErr("list objects", prefix, err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if strings.HasSuffix(name, fileExt) {
				keys = append(keys, strings.TrimSuffix(name, fileExt))
			}
		}
	}
	return keys, nil
}
