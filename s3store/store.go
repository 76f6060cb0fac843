// Package s3store implements text2kv.Store on an S3 bucket. Each object name
// maps to one key under an optional prefix, and writes go through the
// aws-sdk-go-v2 transfer manager.
package s3store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/transfermanager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sagarc03/text2kv"
)

// Config holds the bucket settings.
type Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	Prefix    string `mapstructure:"prefix"`
	PathStyle bool   `mapstructure:"path_style"`
}

type objectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type uploader interface {
	UploadObject(ctx context.Context, input *transfermanager.UploadObjectInput, opts ...func(*transfermanager.Options)) (*transfermanager.UploadObjectOutput, error)
}

// Store is an S3-backed text2kv.Store.
type Store struct {
	api      objectAPI
	uploader uploader
	bucket   string
	prefix   string
}

// New builds a Store from cfg using the default AWS credential chain.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	prefix, err := normalizePrefix(cfg.Prefix)
	if err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})

	return &Store{
		api:      client,
		uploader: transfermanager.New(client),
		bucket:   cfg.Bucket,
		prefix:   prefix,
	}, nil
}

func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return errors.New("s3 bucket is required")
	}
	if strings.TrimSpace(cfg.Region) == "" {
		return errors.New("s3 region is required")
	}
	if cfg.Endpoint == "" {
		return nil
	}

	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Host == "" {
		return fmt.Errorf("s3 endpoint must be a valid http(s) URL: %q", cfg.Endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("s3 endpoint must use http or https: %q", cfg.Endpoint)
	}
	return nil
}

func normalizePrefix(prefix string) (string, error) {
	p := strings.ReplaceAll(strings.TrimSpace(prefix), "\\", "/")
	if p == "" {
		return "", nil
	}
	if strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("s3 prefix must be relative: %q", prefix)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("s3 prefix must not contain '..': %q", prefix)
		}
	}
	return path.Clean(p) + "/", nil
}

func (s *Store) key(name string) (string, error) {
	if strings.TrimSpace(name) == "" || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("invalid object key %q: %w", name, text2kv.ErrInvalidInput)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("invalid object key %q: %w", name, text2kv.ErrInvalidInput)
		}
	}
	return s.prefix + name, nil
}

// Get fetches the object. S3 reads are strongly consistent, so the freshness
// hint is ignored.
func (s *Store) Get(ctx context.Context, name string, _ time.Duration) (string, error) {
	if s.api == nil {
		return "", errors.New("s3 api client is not configured")
	}
	key, err := s.key(name)
	if err != nil {
		return "", err
	}

	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return "", text2kv.ErrNotFound
		}
		return "", fmt.Errorf("get object: %w", err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("read object body: %w", err)
	}
	return string(data), nil
}

func (s *Store) Put(ctx context.Context, name, value string) error {
	if s.uploader == nil {
		return errors.New("s3 uploader is not configured")
	}
	key, err := s.key(name)
	if err != nil {
		return err
	}

	_, err = s.uploader.UploadObject(ctx, &transfermanager.UploadObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          strings.NewReader(value),
		ContentLength: aws.Int64(int64(len(value))),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}
