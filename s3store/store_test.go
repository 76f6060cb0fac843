package s3store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/s3/transfermanager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sagarc03/text2kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBucket serves GetObject from the bodies written through UploadObject.
type fakeBucket struct {
	objects map[string]string
	getErr  error
	putErr  error
	lastPut *transfermanager.UploadObjectInput
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: make(map[string]string)}
}

func (f *fakeBucket) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.objects[*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(v))}, nil
}

func (f *fakeBucket) UploadObject(_ context.Context, input *transfermanager.UploadObjectInput, _ ...func(*transfermanager.Options)) (*transfermanager.UploadObjectOutput, error) {
	f.lastPut = input
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*input.Key] = string(data)
	return &transfermanager.UploadObjectOutput{}, nil
}

func newTestStore(bucket *fakeBucket) *Store {
	return &Store{api: bucket, uploader: bucket, bucket: "text", prefix: "text2kv/"}
}

func TestStore_PutGet(t *testing.T) {
	bucket := newFakeBucket()
	store := newTestStore(bucket)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "abc123", "你好"))
	require.NotNil(t, bucket.lastPut)
	assert.Equal(t, "text", *bucket.lastPut.Bucket)
	assert.Equal(t, "text2kv/abc123", *bucket.lastPut.Key)
	assert.Equal(t, int64(len("你好")), *bucket.lastPut.ContentLength)

	value, err := store.Get(ctx, "abc123", text2kv.Bypass)
	require.NoError(t, err)
	assert.Equal(t, "你好", value)
}

func TestStore_GetNotFound(t *testing.T) {
	store := newTestStore(newFakeBucket())

	_, err := store.Get(context.Background(), "missing", time.Minute)
	assert.ErrorIs(t, err, text2kv.ErrNotFound)
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("get error is wrapped", func(t *testing.T) {
		bucket := newFakeBucket()
		bucket.getErr = errors.New("boom")

		_, err := newTestStore(bucket).Get(ctx, "key", time.Minute)
		assert.EqualError(t, err, "get object: boom")
	})

	t.Run("put error is wrapped", func(t *testing.T) {
		bucket := newFakeBucket()
		bucket.putErr = errors.New("boom")

		assert.EqualError(t, newTestStore(bucket).Put(ctx, "key", "x"), "put object: boom")
	})

	t.Run("unconfigured clients", func(t *testing.T) {
		store := &Store{bucket: "text"}

		_, err := store.Get(ctx, "key", time.Minute)
		assert.ErrorContains(t, err, "s3 api client is not configured")
		assert.ErrorContains(t, store.Put(ctx, "key", "x"), "s3 uploader is not configured")
	})

	t.Run("invalid keys", func(t *testing.T) {
		store := newTestStore(newFakeBucket())

		for _, bad := range []string{"", "  ", "/abs", "../escape", "a/../b", "./a", "a//b"} {
			assert.ErrorIs(t, store.Put(ctx, bad, "x"), text2kv.ErrInvalidInput, bad)
			_, err := store.Get(ctx, bad, time.Minute)
			assert.ErrorIs(t, err, text2kv.ErrInvalidInput, bad)
		}
	})
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid", cfg: Config{Bucket: "b", Region: "us-east-1"}},
		{name: "valid endpoint", cfg: Config{Bucket: "b", Region: "us-east-1", Endpoint: "http://localhost:9000"}},
		{name: "missing bucket", cfg: Config{Region: "us-east-1"}, wantErr: "s3 bucket is required"},
		{name: "missing region", cfg: Config{Bucket: "b"}, wantErr: "s3 region is required"},
		{name: "malformed endpoint", cfg: Config{Bucket: "b", Region: "r", Endpoint: "://bad"}, wantErr: "valid http(s) URL"},
		{name: "endpoint scheme", cfg: Config{Bucket: "b", Region: "r", Endpoint: "ftp://example.com"}, wantErr: "must use http or https"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty", input: "", want: ""},
		{name: "adds trailing slash", input: "text2kv", want: "text2kv/"},
		{name: "normalizes slashes", input: "text2kv\\nested", want: "text2kv/nested/"},
		{name: "collapses duplicate separators", input: "text2kv//nested///", want: "text2kv/nested/"},
		{name: "rejects absolute", input: "/text2kv", wantErr: true},
		{name: "rejects parent traversal", input: "../text2kv", wantErr: true},
		{name: "rejects nested traversal", input: "safe/../text2kv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizePrefix(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_ValidatesBeforeLoadingAWSConfig(t *testing.T) {
	_, err := New(context.Background(), Config{Region: "us-east-1"})
	assert.ErrorContains(t, err, "s3 bucket is required")
}
