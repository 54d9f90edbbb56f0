// Package publish uploads the built client to an S3-compatible bucket.
package publish

import (
	"context"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/popover/internal/errors"
)

// PutObjectAPI is the part of the S3 client the publisher uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures a Publisher.
type Options struct {
	Bucket string

	// Prefix is prepended to every object key, e.g. "popover/v1".
	Prefix string

	// CacheControl is sent with every object when set.
	CacheControl string

	Logger *slog.Logger
}

// Object describes an uploaded file.
type Object struct {
	Path        string
	Key         string
	ContentType string
	Size        int64
}

// Publisher uploads files to a bucket.
type Publisher struct {
	client PutObjectAPI
	opts   Options
	logger *slog.Logger
}

// New creates a Publisher. It fails when no bucket is set.
func New(client PutObjectAPI, opts Options) (*Publisher, error) {
	if opts.Bucket == "" {
		return nil, errors.New("P050")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{client: client, opts: opts, logger: logger}, nil
}

// Key returns the object key for a local file.
func (p *Publisher) Key(file string) string {
	return path.Join(strings.Trim(p.opts.Prefix, "/"), filepath.Base(file))
}

// Publish uploads files in order and stops at the first failure. The
// objects uploaded before the failure are returned with the error.
func (p *Publisher) Publish(ctx context.Context, files []string) ([]Object, error) {
	out := make([]Object, 0, len(files))
	for _, file := range files {
		obj, err := p.put(ctx, file)
		if err != nil {
			return out, err
		}
		p.logger.Info("published", "key", obj.Key, "bytes", obj.Size)
		out = append(out, obj)
	}
	return out, nil
}

func (p *Publisher) put(ctx context.Context, file string) (Object, error) {
	f, err := os.Open(file)
	if err != nil {
		return Object{}, errors.New("P052").WithDetail(file).Wrap(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Object{}, errors.New("P052").WithDetail(file).Wrap(err)
	}

	obj := Object{
		Path:        file,
		Key:         p.Key(file),
		ContentType: ContentType(file),
		Size:        info.Size(),
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.opts.Bucket),
		Key:           aws.String(obj.Key),
		Body:          f,
		ContentLength: aws.Int64(obj.Size),
		ContentType:   aws.String(obj.ContentType),
	}
	if p.opts.CacheControl != "" {
		input.CacheControl = aws.String(p.opts.CacheControl)
	}

	if _, err := p.client.PutObject(ctx, input); err != nil {
		return Object{}, errors.New("P052").WithDetailf("s3://%s/%s", p.opts.Bucket, obj.Key).Wrap(err)
	}
	return obj, nil
}

// ContentType returns the MIME type served for a build artifact.
func ContentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".wasm":
		return "application/wasm"
	case ".js":
		return "text/javascript; charset=utf-8"
	}
	if t := mime.TypeByExtension(filepath.Ext(file)); t != "" {
		return t
	}
	return "application/octet-stream"
}
