package ports

import (
	"context"

	"github.com/spcloud/urlship/internal/domain"
)

// ObjectLister enumerates stored objects.
type ObjectLister interface {
	// List returns every URL candidate under prefix in listing order,
	// following continuation tokens until the listing is exhausted.
	// Zero-byte directory placeholders are counted, not returned.
	List(ctx context.Context, prefix string) (domain.ListResult, error)
}

// URLSigner produces time-limited access URLs.
type URLSigner interface {
	// Sign returns a URL for key valid for the configured expiry,
	// starting at call time.
	Sign(ctx context.Context, key domain.ResourceKey) (domain.SignedURLEntry, error)
}
