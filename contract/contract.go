//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-archive/domain"
	"context"
)

// MediaResolver turns an attachment reference into a fetchable URL.
// Resolution may require a temporary-access grant and can fail per item.
type MediaResolver interface {
	ResolveURL(ctx context.Context, ref domain.MediaRef) (string, error)
}

// MediaFetcher retrieves the bytes behind a resolved URL.
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DownloadSink receives the final artifact. The pipeline treats the
// call as fire-and-forget: a sink failure is logged, never propagated.
type DownloadSink interface {
	Save(ctx context.Context, artifact domain.Artifact) error
}
