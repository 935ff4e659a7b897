// Package assets resolves remote photos into embeddable images. All fetches
// fan out concurrently under a bounded semaphore; a photo that cannot be
// fetched or decoded degrades to a fixed transparent placeholder and never
// fails the batch.
package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/semaphore"

	"report-generator-service/metrics"
)

// placeholderPNG is a 1x1 transparent PNG, substituted for any photo that
// cannot be resolved.
const placeholderPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// MIME types produced by the resolver.
const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
	MIMEWebP = "image/webp"
)

// ResolvedAsset is the embeddable representation of one photo. Resolved is
// false when the data is the placeholder substitution.
type ResolvedAsset struct {
	SourceURL string
	Data      []byte
	MIME      string
	Resolved  bool
}

// DataURI returns the asset as a data URI.
func (a *ResolvedAsset) DataURI() string {
	return "data:" + a.MIME + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

// Resolver fetches and normalizes photo assets.
type Resolver struct {
	client    *http.Client
	retries   int
	sem       *semaphore.Weighted
	maxDim    int
	userAgent string
	holder    []byte
}

// NewResolver builds a resolver. maxConcurrent bounds the fan-out; retries is
// the number of additional attempts after a failed fetch.
func NewResolver(timeout time.Duration, retries int, maxConcurrent int64, maxDim int, userAgent string) *Resolver {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	holder, err := base64.StdEncoding.DecodeString(placeholderPNG)
	if err != nil {
		// The constant is well-formed; this cannot happen at runtime.
		panic(fmt.Sprintf("assets: bad placeholder constant: %v", err))
	}
	return &Resolver{
		client:    &http.Client{Timeout: timeout},
		retries:   retries,
		sem:       semaphore.NewWeighted(maxConcurrent),
		maxDim:    maxDim,
		userAgent: userAgent,
		holder:    holder,
	}
}

// Placeholder returns the placeholder asset for a source URL.
func (r *Resolver) Placeholder(url string) ResolvedAsset {
	return ResolvedAsset{
		SourceURL: url,
		Data:      r.holder,
		MIME:      MIMEPNG,
		Resolved:  false,
	}
}

// Resolve fetches every URL concurrently and returns one asset per URL in
// input order. It never returns an error: unresolvable photos come back as
// placeholders with Resolved=false. Fan-in is keyed by slice index, so
// completion order never reorders photos.
func (r *Resolver) Resolve(ctx context.Context, urls []string) []ResolvedAsset {
	out := make([]ResolvedAsset, len(urls))

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(idx int, url string) {
			defer wg.Done()
			if err := r.sem.Acquire(ctx, 1); err != nil {
				out[idx] = r.Placeholder(url)
				return
			}
			defer r.sem.Release(1)
			out[idx] = r.resolveOne(ctx, url)
		}(i, url)
	}
	wg.Wait()

	return out
}

// resolveOne fetches and normalizes a single photo, falling back to the
// placeholder on any failure.
func (r *Resolver) resolveOne(ctx context.Context, url string) ResolvedAsset {
	start := time.Now()
	defer func() {
		metrics.AssetFetchDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 0; attempt <= r.retries; attempt++ {
		data, err := r.fetch(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}

		normalized, mime, err := r.normalize(data, InferMIME(url))
		if err != nil {
			lastErr = err
			break // bad image data will not improve on retry
		}

		metrics.AssetFetchTotal.WithLabelValues("ok").Inc()
		return ResolvedAsset{
			SourceURL: url,
			Data:      normalized,
			MIME:      mime,
			Resolved:  true,
		}
	}

	log.WithError(lastErr).Warnf("photo unresolvable, substituting placeholder: %s", url)
	metrics.AssetFetchTotal.WithLabelValues("failed").Inc()
	metrics.PlaceholderSubstitutions.Inc()
	return r.Placeholder(url)
}

// fetch performs one HTTP GET for a photo.
func (r *Resolver) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// InferMIME infers the content type from the URL suffix: png and webp are
// recognized, everything else is treated as jpeg.
func InferMIME(url string) string {
	// Strip query and fragment before looking at the suffix.
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	lower := strings.ToLower(url)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return MIMEPNG
	case strings.HasSuffix(lower, ".webp"):
		return MIMEWebP
	default:
		return MIMEJPEG
	}
}
