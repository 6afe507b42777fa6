package listsource

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sts10/phraze/internal/config"
	"github.com/sts10/phraze/internal/wordlist"
)

func newS3Client(cfg config.S3) *s3.Client {
	var creds aws.CredentialsProvider = aws.AnonymousCredentials{}
	if cfg.User != "" {
		creds = credentials.NewStaticCredentialsProvider(cfg.User, cfg.Password, "" /* session */)
	}
	opts := s3.Options{
		Region:                     cfg.Region,
		DefaultsMode:               aws.DefaultsModeStandard,
		Credentials:                creds,
		UsePathStyle:               true,
		RetryMaxAttempts:           1,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenSupported,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenSupported,
		HTTPClient: &http.Client{
			Transport: &http.Transport{},
		},
	}
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

func loadS3(ctx context.Context, ref string, cfg config.S3) (*wordlist.Custom, error) {
	bucket, key, err := ParseS3Ref(ref)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	res, err := newS3Client(cfg).GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", classify(err))
	}
	defer res.Body.Close()
	return wordlist.Read(res.Body)
}
