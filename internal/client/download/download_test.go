package download

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	calls   int
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls++
	body, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		in          string
		bucket, key string
		wantErr     bool
	}{
		{"s3://videos/out/a.mp4", "videos", "out/a.mp4", false},
		{"s3://videos/", "", "", true},
		{"s3:///a.mp4", "", "", true},
		{"https://cdn/a.mp4", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			b, k, err := ParseS3URL(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, b)
			assert.Equal(t, tt.key, k)
		})
	}
}

func TestFetch_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v.mp4" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("MP4DATA"))
	}))
	defer srv.Close()

	d := New(WithHTTPClient(srv.Client()))

	var buf bytes.Buffer
	n, err := d.Fetch(context.Background(), srv.URL+"/v.mp4", &buf)
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
	assert.Equal(t, "MP4DATA", buf.String())

	_, err = d.Fetch(context.Background(), srv.URL+"/missing.mp4", &buf)
	assert.ErrorContains(t, err, "download failed: 404")
}

func TestFetch_S3(t *testing.T) {
	fs := &fakeS3{objects: map[string]string{"videos/out/a.mp4": "S3DATA"}}
	d := New(WithS3Client(fs))

	var buf bytes.Buffer
	n, err := d.Fetch(context.Background(), "s3://videos/out/a.mp4", &buf)
	require.NoError(t, err)
	assert.EqualValues(t, 6, n)
	assert.Equal(t, "S3DATA", buf.String())

	_, err = d.Fetch(context.Background(), "s3://videos/none.mp4", &buf)
	assert.ErrorContains(t, err, "get s3://videos/none.mp4")
	assert.Equal(t, 2, fs.calls)
}

func TestFetch_S3ClientBuiltOnce(t *testing.T) {
	fs := &fakeS3{objects: map[string]string{"b/k": "x"}}
	built := 0
	d := New()
	d.newS3 = func(context.Context) (ObjectGetter, error) {
		built++
		return fs, nil
	}

	for range 2 {
		_, err := d.Fetch(context.Background(), "s3://b/k", io.Discard)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, built)
}

func TestFetch_S3ConfigError(t *testing.T) {
	d := New()
	d.newS3 = func(context.Context) (ObjectGetter, error) {
		return nil, errors.New("no region")
	}
	_, err := d.Fetch(context.Background(), "s3://b/k", io.Discard)
	assert.ErrorContains(t, err, "no region")
}

func TestFetch_UnsupportedScheme(t *testing.T) {
	d := New()
	for _, u := range []string{"ftp://host/a.mp4", "generated-video-url", "::"} {
		_, err := d.Fetch(context.Background(), u, io.Discard)
		assert.ErrorIs(t, err, ErrUnsupportedURL, u)
	}
}

func TestToFile(t *testing.T) {
	fs := &fakeS3{objects: map[string]string{"b/k.mp4": "VIDEO"}}
	d := New(WithS3Client(fs))
	dir := t.TempDir()
	path := filepath.Join(dir, "out.mp4")

	n, err := d.ToFile(context.Background(), "s3://b/k.mp4", path)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "VIDEO", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is removed")
}

func TestToFile_FailureLeavesNoFile(t *testing.T) {
	d := New(WithS3Client(&fakeS3{}))
	dir := t.TempDir()
	path := filepath.Join(dir, "out.mp4")

	_, err := d.ToFile(context.Background(), "s3://b/missing", path)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
