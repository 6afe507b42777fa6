package listsource

import (
	"errors"
	"io/fs"

	"github.com/aws/smithy-go"
)

// missingCodes are the S3 error codes that mean the list doesn't exist.
var missingCodes = []string{"NoSuchKey", "NoSuchBucket"}

func hasSmithyCode(err error, codes ...string) bool {
	if err == nil {
		return false
	}
	var smithyErr smithy.APIError
	if !errors.As(err, &smithyErr) {
		return false
	}
	for _, code := range codes {
		if smithyErr.ErrorCode() == code {
			return true
		}
	}
	return false
}

// classify maps S3 errors onto the io/fs sentinels callers already check for.
func classify(err error) error {
	if hasSmithyCode(err, missingCodes...) {
		return errors.Join(fs.ErrNotExist, err)
	}
	return err
}
