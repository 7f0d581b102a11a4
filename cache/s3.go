package cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Cache keeps entries as objects in an S3 bucket, one object per key.
type S3Cache struct {
	// Client may be set before Init to reuse an existing client, e.g. one
	// pointed at an S3-compatible endpoint.
	Client *s3.Client

	bucket string
	prefix string
	gzip   bool
	ctx    context.Context
	logger *slog.Logger
}

func NewS3Cache(ctx context.Context, bucket, prefix string, gzip bool, logger *slog.Logger) *S3Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if prefix == "" {
		prefix = "pairings"
	}
	return &S3Cache{bucket: bucket, prefix: prefix, gzip: gzip, ctx: ctx, logger: logger}
}

// Init loads the default AWS configuration (unless Client was provided) and
// checks that the bucket can be read and listed.
func (c *S3Cache) Init() error {
	if c.Client == nil {
		cfg, err := config.LoadDefaultConfig(c.ctx)
		if err != nil {
			return fmt.Errorf("s3cache: load aws config: %w", err)
		}
		c.Client = s3.NewFromConfig(cfg)
	}

	if _, err := c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucket),
	}); err != nil {
		return fmt.Errorf("s3cache: head bucket %s: %w", c.bucket, err)
	}
	if _, err := c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucket),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache: list objects in %s: %w", c.bucket, err)
	}
	return nil
}

func (c *S3Cache) Get(key string) ([]byte, bool) {
	objKey := c.objectKey(key)
	resp, err := c.Client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		var apiErr smithy.APIError
		// NoSuchKey is an ordinary miss.
		if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
			c.logger.Error("s3 cache get failed", slog.String("object", objKey), slog.Any("error", err))
		}
		return nil, false
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if c.gzip {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			c.logger.Error("s3 cache object is not gzip", slog.String("object", objKey), slog.Any("error", err))
			return nil, false
		}
		defer gz.Close()
		rdr = gz
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		c.logger.Error("s3 cache read failed", slog.String("object", objKey), slog.Any("error", err))
		return nil, false
	}
	return data, true
}

func (c *S3Cache) Set(key string, data []byte) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(c.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}

	if c.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			c.logger.Error("s3 cache gzip failed", slog.String("object", *input.Key), slog.Any("error", err))
			return
		}
		if err := gw.Close(); err != nil {
			c.logger.Error("s3 cache gzip failed", slog.String("object", *input.Key), slog.Any("error", err))
			return
		}
		input.Body = bytes.NewReader(buf.Bytes())
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		c.logger.Error("s3 cache put failed", slog.String("object", *input.Key), slog.Any("error", err))
	}
}

func (c *S3Cache) Delete(key string) {
	objKey := c.objectKey(key)
	if _, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objKey),
	}); err != nil {
		c.logger.Error("s3 cache delete failed", slog.String("object", objKey), slog.Any("error", err))
	}
}

// objectKey hashes the cache key, which is a JSON document and not a valid
// object name on its own.
func (c *S3Cache) objectKey(key string) string {
	sum := md5.Sum([]byte(key))
	objKey := fmt.Sprintf("%s/%s", c.prefix, hex.EncodeToString(sum[:]))
	if c.gzip {
		objKey += ".gz"
	}
	return objKey
}
