package domain

// MediaRef describes one attachment of a message. It carries metadata
// only; obtaining the bytes goes through contract.MediaResolver and
// contract.MediaFetcher, both of which may fail per item.
type MediaRef struct {
	Filename    string `validate:"required,max=1024"`
	ContentType string
	SizeBytes   int64 `validate:"gte=0"`
}

// FetchedMedia is one attachment whose bytes were actually obtained.
type FetchedMedia struct {
	Ref  MediaRef
	Data []byte
}
