// Package archive assembles the downloadable artifact: the transcript
// text alone, or a zip bundling it with every attachment whose bytes
// could be obtained.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"chat-archive/contract"
	"chat-archive/domain"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

type Packager struct {
	log      *slog.Logger
	resolver contract.MediaResolver
	fetcher  contract.MediaFetcher
	validate *validator.Validate
}

func NewPackager(log *slog.Logger, resolver contract.MediaResolver, fetcher contract.MediaFetcher) *Packager {
	return &Packager{
		log:      log,
		resolver: resolver,
		fetcher:  fetcher,
		validate: validator.New(),
	}
}

// mediaResult is the settlement of one attachment's resolve+fetch.
type mediaResult struct {
	ref  domain.MediaRef
	data []byte
	err  error
}

// Package produces the final artifact for one transcript. Attachments
// are fetched concurrently and each failure is logged and dropped; a
// missing attachment never blocks delivery of the text. With zero
// surviving attachments the artifact is a bare text file. A zip
// assembly failure also degrades to the text-only artifact.
func (p *Packager) Package(ctx context.Context, rendered domain.RenderedTranscript, refs []domain.MediaRef) (domain.Artifact, error) {
	fetched := p.fetchAll(ctx, refs)
	if len(fetched) == 0 {
		return textArtifact(rendered), nil
	}

	data, err := buildZip(rendered, fetched)
	if err != nil {
		p.log.Error("Archive assembly failed, delivering text-only transcript",
			"stem", rendered.FileStem, "error", err)
		return textArtifact(rendered), nil
	}

	return domain.Artifact{
		Filename:    rendered.FileStem + ".zip",
		ContentType: "application/zip",
		Kind:        domain.ArtifactZip,
		Data:        data,
	}, nil
}

// fetchAll settles every attachment concurrently. Results land in
// input order so archive content is reproducible for a given request.
func (p *Packager) fetchAll(ctx context.Context, refs []domain.MediaRef) []domain.FetchedMedia {
	results := make([]mediaResult, len(refs))
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref domain.MediaRef) {
			defer wg.Done()
			results[i] = p.fetchOne(ctx, ref)
		}(i, ref)
	}
	wg.Wait()

	return lo.FilterMap(results, func(r mediaResult, _ int) (domain.FetchedMedia, bool) {
		if r.err != nil {
			p.log.Error("Attachment dropped from archive", "filename", r.ref.Filename, "error", r.err)
			return domain.FetchedMedia{}, false
		}
		return domain.FetchedMedia{Ref: r.ref, Data: r.data}, true
	})
}

func (p *Packager) fetchOne(ctx context.Context, ref domain.MediaRef) mediaResult {
	res := mediaResult{ref: ref}
	if err := p.validate.Struct(ref); err != nil {
		res.err = fmt.Errorf("invalid media reference: %w", err)
		return res
	}
	url, err := p.resolver.ResolveURL(ctx, ref)
	if err != nil {
		res.err = fmt.Errorf("resolving url: %w", err)
		return res
	}
	res.data, err = p.fetcher.Fetch(ctx, url)
	if err != nil {
		res.err = fmt.Errorf("fetching bytes: %w", err)
	}
	return res
}

func textArtifact(rendered domain.RenderedTranscript) domain.Artifact {
	return domain.Artifact{
		Filename:    rendered.FileStem + ".txt",
		ContentType: "text/plain; charset=utf-8",
		Kind:        domain.ArtifactText,
		Data:        []byte(rendered.Text),
	}
}

// buildZip lays out a single folder named after the stem holding the
// transcript text plus one entry per fetched attachment.
func buildZip(rendered domain.RenderedTranscript, media []domain.FetchedMedia) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	folder := rendered.FileStem + "/"

	w, err := zw.Create(folder + rendered.FileStem + ".txt")
	if err != nil {
		return nil, fmt.Errorf("creating transcript entry: %w", err)
	}
	if _, err = w.Write([]byte(rendered.Text)); err != nil {
		return nil, fmt.Errorf("writing transcript entry: %w", err)
	}

	seen := map[string]int{}
	for _, m := range media {
		w, err = zw.Create(folder + uniqueName(seen, m.Ref.Filename))
		if err != nil {
			return nil, fmt.Errorf("creating entry for %s: %w", m.Ref.Filename, err)
		}
		if _, err = w.Write(m.Data); err != nil {
			return nil, fmt.Errorf("writing entry for %s: %w", m.Ref.Filename, err)
		}
	}

	if err = zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// uniqueName disambiguates duplicate attachment filenames inside one
// archive by suffixing a counter before the extension.
func uniqueName(seen map[string]int, name string) string {
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}
	ext := path.Ext(name)
	return fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(name, ext), n, ext)
}
