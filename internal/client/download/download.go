// Package download saves generated videos to local files. Video URLs are
// either plain http(s) links or s3://bucket/key object references; the latter
// are read with the AWS default credential chain.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/vidgen/internal/logging"
)

var ErrUnsupportedURL = errors.New("unsupported video url")

// ObjectGetter is the subset of *s3.Client used here.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Downloader struct {
	http *http.Client
	log  logging.Logger

	mu    sync.Mutex
	s3    ObjectGetter
	newS3 func(ctx context.Context) (ObjectGetter, error)
}

type Option func(*Downloader)

func WithHTTPClient(c *http.Client) Option {
	return func(d *Downloader) { d.http = c }
}

func WithS3Client(c ObjectGetter) Option {
	return func(d *Downloader) { d.s3 = c }
}

func WithLogger(l logging.Logger) Option {
	return func(d *Downloader) { d.log = l }
}

func New(opts ...Option) *Downloader {
	d := &Downloader{
		http:  http.DefaultClient,
		log:   logging.Discard(),
		newS3: defaultS3,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// defaultS3 builds a client from the environment (AWS_REGION,
// AWS_ENDPOINT_URL_S3, shared config files).
func defaultS3(ctx context.Context) (ObjectGetter, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	}), nil
}

func (d *Downloader) s3Client(ctx context.Context) (ObjectGetter, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.s3 == nil {
		c, err := d.newS3(ctx)
		if err != nil {
			return nil, err
		}
		d.s3 = c
	}
	return d.s3, nil
}

// ParseS3URL splits s3://bucket/key.
func ParseS3URL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "s3" {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedURL, raw)
	}
	key = strings.TrimLeft(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: s3 url needs bucket and key: %s", ErrUnsupportedURL, raw)
	}
	return u.Host, key, nil
}

// Fetch streams the video at rawURL into w and returns the byte count.
func (d *Downloader) Fetch(ctx context.Context, rawURL string, w io.Writer) (int64, error) {
	body, err := d.open(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	n, err := io.Copy(w, body)
	if err != nil {
		return n, fmt.Errorf("download interrupted: %w", err)
	}
	d.log.Debug(ctx, "video downloaded", "url", rawURL, "bytes", n)
	return n, nil
}

func (d *Downloader) open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
	}

	switch u.Scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := d.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("download failed: %s", resp.Status)
		}
		return resp.Body, nil

	case "s3":
		bucket, key, err := ParseS3URL(u.String())
		if err != nil {
			return nil, err
		}
		c, err := d.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		out, err := c.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
		if err != nil {
			return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
		}
		d.log.Debug(ctx, "s3 object opened", "bucket", bucket, "key", key,
			"size", aws.ToInt64(out.ContentLength), "type", aws.ToString(out.ContentType))
		return out.Body, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, rawURL)
	}
}

// ToFile downloads rawURL into path. The file appears only once the download
// is complete.
func (d *Downloader) ToFile(ctx context.Context, rawURL, path string) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vgdl-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	n, err := d.Fetch(ctx, rawURL, tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return n, err
	}
	return n, nil
}
