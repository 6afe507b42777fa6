package listsource

import (
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	"go.akshayshah.org/attest"

	"github.com/sts10/phraze/internal/config"
	"github.com/sts10/phraze/internal/wordlist"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	attest.Ok(t, os.WriteFile(path, []byte("pear\napple\n\napple\nfig\n"), 0o600))

	list, err := Load(t.Context(), path, config.S3{})
	attest.Ok(t, err)
	attest.Equal(t, list.Words(), []string{"apple", "fig", "pear"})
	attest.Equal(t, list.Dropped(), 2)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(t.Context(), filepath.Join(dir, "missing.txt"), config.S3{})
	var readErr *wordlist.ReadError
	attest.True(t, errors.As(err, &readErr))
	attest.Equal(t, readErr.Source, filepath.Join(dir, "missing.txt"))
	attest.ErrorIs(t, err, fs.ErrNotExist)

	empty := filepath.Join(dir, "empty.txt")
	attest.Ok(t, os.WriteFile(empty, []byte("\n \n"), 0o600))
	_, err = Load(t.Context(), empty, config.S3{})
	attest.True(t, errors.As(err, &readErr))
	attest.ErrorIs(t, err, wordlist.ErrEmptyList)
}

func TestParseS3Ref(t *testing.T) {
	bucket, key, err := ParseS3Ref("s3://lists/team/words.txt")
	attest.Ok(t, err)
	attest.Equal(t, bucket, "lists")
	attest.Equal(t, key, "team/words.txt")

	for _, bad := range []string{"s3://", "s3://lists", "s3://lists/", "s3:///words.txt", "words.txt"} {
		_, _, err := ParseS3Ref(bad)
		attest.ErrorIs(t, err, ErrBadRef, attest.Sprintf("ref %q", bad))
	}
	attest.True(t, IsRemote("s3://a/b"))
	attest.False(t, IsRemote("./s3://a/b"))
}

// fakeS3 serves path-style GetObject requests from an in-memory bucket.
type fakeS3 struct {
	bucket  string
	objects map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if r.Method != http.MethodGet {
		writeS3Error(w, http.StatusMethodNotAllowed, "MethodNotAllowed")
		return
	}
	if bucket != f.bucket {
		writeS3Error(w, http.StatusNotFound, "NoSuchBucket")
		return
	}
	body, ok := f.objects[key]
	if !ok {
		writeS3Error(w, http.StatusNotFound, "NoSuchKey")
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(body))
}

func writeS3Error(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<Error><Code>` + code + `</Code><Message>` + code + `</Message><RequestId>test</RequestId></Error>`))
}

func newFakeS3(tb testing.TB) config.S3 {
	tb.Helper()
	srv := httptest.NewServer(&fakeS3{
		bucket: "lists",
		objects: map[string]string{
			"words.txt": "delta\r\ncharlie\r\nbravo\r\nalpha\r\n",
			"empty.txt": "",
		},
	})
	tb.Cleanup(srv.Close)
	return config.S3{
		Endpoint: srv.URL,
		Region:   "us-east-1",
		User:     "admin",
		Password: "password",
		Timeout:  5 * time.Second,
	}
}

func TestLoadS3(t *testing.T) {
	cfg := newFakeS3(t)

	list, err := Load(t.Context(), "s3://lists/words.txt", cfg)
	attest.Ok(t, err)
	attest.Equal(t, list.Words(), []string{"alpha", "bravo", "charlie", "delta"})

	cfg.User = ""
	list, err = Load(t.Context(), "s3://lists/words.txt", cfg)
	attest.Ok(t, err, attest.Sprint("anonymous access"))
	attest.Equal(t, list.Len(), 4)
}

func TestLoadS3Errors(t *testing.T) {
	cfg := newFakeS3(t)

	tests := []struct {
		ref  string
		want error
	}{
		{"s3://lists/missing.txt", fs.ErrNotExist},
		{"s3://nope/words.txt", fs.ErrNotExist},
		{"s3://lists/empty.txt", wordlist.ErrEmptyList},
		{"s3://lists", ErrBadRef},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			_, err := Load(t.Context(), tt.ref, cfg)
			var readErr *wordlist.ReadError
			attest.True(t, errors.As(err, &readErr), attest.Sprintf("got %T", err))
			attest.Equal(t, readErr.Source, tt.ref)
			attest.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClassify(t *testing.T) {
	for _, code := range []string{"NoSuchKey", "NoSuchBucket"} {
		err := classify(&smithy.GenericAPIError{Code: code})
		attest.ErrorIs(t, err, fs.ErrNotExist)
	}
	denied := &smithy.GenericAPIError{Code: "AccessDenied"}
	attest.False(t, errors.Is(classify(denied), fs.ErrNotExist))
	attest.False(t, hasSmithyCode(nil, "NoSuchKey"))
	attest.False(t, hasSmithyCode(errors.New("plain"), "NoSuchKey"))
}
