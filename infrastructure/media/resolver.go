package media

import (
	"context"
	"net/url"

	"chat-archive/domain"
	"chat-archive/errors"
)

// BaseURLResolver resolves attachments against a single media host,
// the shape a temporary-access download endpoint exposes. An empty
// base URL makes every resolution fail, which the packager treats as
// a dropped attachment.
type BaseURLResolver struct {
	baseURL string
}

func NewBaseURLResolver(baseURL string) BaseURLResolver {
	return BaseURLResolver{baseURL: baseURL}
}

func (r BaseURLResolver) ResolveURL(_ context.Context, ref domain.MediaRef) (string, error) {
	if r.baseURL == "" {
		return "", errors.ErrMediaUnresolvable
	}
	return url.JoinPath(r.baseURL, ref.Filename)
}
