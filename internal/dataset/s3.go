package dataset

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Source fetches the dataset object from an S3 bucket.
type S3Source struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Source builds an S3-backed dataset source. The bucket is required;
// a missing bucket is a configuration error surfaced at construction time.
func NewS3Source(ctx context.Context, region, bucket string) (*S3Source, error) {
	if bucket == "" {
		return nil, ErrBucketRequired
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Source{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    ObjectKey,
	}, nil
}

// Fetch downloads and parses the dataset object.
func (s *S3Source) Fetch(ctx context.Context) (WideTable, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return WideTable{}, fmt.Errorf("s3 get object bucket=%s key=%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()
	return ParseCSV(out.Body)
}

var _ Source = (*S3Source)(nil)
