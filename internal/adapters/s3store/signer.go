package s3store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/spcloud/urlship/internal/domain"
)

// PresignAPI is the subset of *s3.PresignClient used for signing.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Signer implements ports.URLSigner with presigned GetObject requests.
type Signer struct {
	client PresignAPI
	bucket string
	expiry time.Duration
}

// NewSigner creates a signer producing URLs valid for expiry.
func NewSigner(client PresignAPI, bucket string, expiry time.Duration) *Signer {
	return &Signer{
		client: client,
		bucket: bucket,
		expiry: expiry,
	}
}

// Sign presigns a GetObject request for key.
func (s *Signer) Sign(ctx context.Context, key domain.ResourceKey) (domain.SignedURLEntry, error) {
	req, err := s.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return domain.SignedURLEntry{}, fmt.Errorf("presign %s: %w", key, err)
	}
	return domain.SignedURLEntry{Key: key, URL: req.URL}, nil
}
