package pipeline

import (
	"bytes"
	"context"

	"github.com/minio/minio-go/v7"
)

func contextBackground() context.Context { return context.Background() }

// s3Sink buffers a stage's output in memory and uploads it as a single
// object on Close, the way a stage's `> s3://...` redirection target
// needs to behave (minio-go has no streaming-append PutObject).
type s3Sink struct {
	client *minio.Client
	bucket string
	key    string
	buf    bytes.Buffer
}

func newS3Sink(client *minio.Client, bucket, key string) *s3Sink {
	return &s3Sink{client: client, bucket: bucket, key: key}
}

func (s *s3Sink) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

func (s *s3Sink) Close() error {
	_, err := s.client.PutObject(contextBackground(), s.bucket, s.key,
		bytes.NewReader(s.buf.Bytes()), int64(s.buf.Len()), minio.PutObjectOptions{})
	return err
}
