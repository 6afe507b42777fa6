// Package listsource loads custom word lists from local files or from S3
// compatible object storage.
package listsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sts10/phraze/internal/config"
	"github.com/sts10/phraze/internal/wordlist"
)

const s3Scheme = "s3://"

// ErrBadRef is returned for an s3:// reference without both a bucket and a
// key.
var ErrBadRef = errors.New("want s3://bucket/key")

// IsRemote reports whether ref names an object in S3 rather than a local
// file.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, s3Scheme)
}

// ParseS3Ref splits an s3://bucket/key reference.
func ParseS3Ref(ref string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(ref, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("%q: %w", ref, ErrBadRef)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%q: %w", ref, ErrBadRef)
	}
	return bucket, key, nil
}

// Load reads and validates the custom list named by ref, which is either a
// filesystem path or an s3://bucket/key reference. Every failure is a
// *wordlist.ReadError; a missing file, bucket or object unwraps to
// fs.ErrNotExist.
func Load(ctx context.Context, ref string, cfg config.S3) (*wordlist.Custom, error) {
	var (
		list *wordlist.Custom
		err  error
	)
	if IsRemote(ref) {
		list, err = loadS3(ctx, ref, cfg)
	} else {
		list, err = loadFile(ref)
	}
	if err != nil {
		return nil, &wordlist.ReadError{Source: ref, Err: err}
	}
	return list, nil
}

func loadFile(path string) (*wordlist.Custom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return wordlist.Read(f)
}
