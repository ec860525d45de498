// Package s3store implements object enumeration and URL signing on Amazon S3.
package s3store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/spcloud/urlship/internal/domain"
	"github.com/spcloud/urlship/internal/ports"
)

// Lister implements ports.ObjectLister over ListObjectsV2.
type Lister struct {
	client   s3.ListObjectsV2APIClient
	bucket   string
	pageSize int32
	logger   ports.Logger
}

// NewLister creates a lister for bucket. A pageSize of zero uses the service
// default (1000 keys per page).
func NewLister(client s3.ListObjectsV2APIClient, bucket string, pageSize int32, logger ports.Logger) *Lister {
	return &Lister{
		client:   client,
		bucket:   bucket,
		pageSize: pageSize,
		logger:   logger,
	}
}

// List pages through every object under prefix.
func (l *Lister) List(ctx context.Context, prefix string) (domain.ListResult, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(l.bucket),
		Prefix: aws.String(prefix),
	}
	if l.pageSize > 0 {
		input.MaxKeys = aws.Int32(l.pageSize)
	}

	var res domain.ListResult
	pages := 0
	paginator := s3.NewListObjectsV2Paginator(l.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return domain.ListResult{}, fmt.Errorf("list s3://%s/%s page %d: %w", l.bucket, prefix, pages+1, err)
		}
		pages++
		for _, obj := range page.Contents {
			o := domain.Object{Key: aws.ToString(obj.Key), Size: aws.ToInt64(obj.Size)}
			if o.IsPlaceholder() {
				res.Placeholders++
				continue
			}
			res.Keys = append(res.Keys, o.Key)
		}
	}

	l.logger.Debug("listed objects",
		ports.String("bucket", l.bucket),
		ports.String("prefix", prefix),
		ports.Int("pages", pages),
		ports.Int("keys", len(res.Keys)),
	)
	return res, nil
}
