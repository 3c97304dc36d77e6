package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Dosada05/bracket-live/storage"
)

// IconResolver maps a player's numeric profile icon id to the URL the
// bracket widget should load. The mapping is deterministic per icon id.
type IconResolver interface {
	Resolve(ctx context.Context, icon int) string
}

// cdnIconResolver serves icons straight from the public game CDN. This is a
// pure function of the icon id, no I/O.
type cdnIconResolver struct {
	baseURL string
}

func NewCDNIconResolver(baseURL string) IconResolver {
	return &cdnIconResolver{baseURL: baseURL}
}

func (r *cdnIconResolver) Resolve(_ context.Context, icon int) string {
	return fmt.Sprintf("%s/profile/%d.png", r.baseURL, icon)
}

// mirrorTimeout bounds one background fetch-and-upload cycle.
const mirrorTimeout = 30 * time.Second

// mirroredIconResolver copies each icon once into our own bucket and serves
// it from there, so bracket pages do not depend on the game CDN's uptime.
// Mirroring happens in the background; until it completes (or if it fails)
// callers get the CDN URL, so projections never wait on an upload.
type mirroredIconResolver struct {
	fallback IconResolver
	uploader storage.FileUploader
	client   *http.Client
	logger   *slog.Logger

	mu       sync.Mutex
	mirrored map[int]string
	inflight map[int]struct{}
}

func NewMirroredIconResolver(fallback IconResolver, uploader storage.FileUploader, logger *slog.Logger) IconResolver {
	return &mirroredIconResolver{
		fallback: fallback,
		uploader: uploader,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
		mirrored: make(map[int]string),
		inflight: make(map[int]struct{}),
	}
}

func (r *mirroredIconResolver) Resolve(ctx context.Context, icon int) string {
	r.mu.Lock()
	if url, ok := r.mirrored[icon]; ok {
		r.mu.Unlock()
		return url
	}
	if _, busy := r.inflight[icon]; !busy {
		r.inflight[icon] = struct{}{}
		go r.mirrorInBackground(icon)
	}
	r.mu.Unlock()

	return r.fallback.Resolve(ctx, icon)
}

// mirrorInBackground runs detached from any request context; a request that
// triggered the mirror may be long gone before the upload finishes.
func (r *mirroredIconResolver) mirrorInBackground(icon int) {
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	url, err := r.mirror(ctx, icon)

	r.mu.Lock()
	delete(r.inflight, icon)
	if err == nil {
		r.mirrored[icon] = url
	}
	r.mu.Unlock()

	if err != nil {
		r.logger.Warn("icon mirroring failed, serving from CDN",
			slog.Int("icon", icon), slog.Any("error", err))
	}
}

func (r *mirroredIconResolver) mirror(ctx context.Context, icon int) (string, error) {
	source := r.fallback.Resolve(ctx, icon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build icon request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch icon %d: %w", icon, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("icon %d fetch returned status %d", icon, resp.StatusCode)
	}

	key := fmt.Sprintf("icons/profile/%d.png", icon)
	result, err := r.uploader.Upload(ctx, key, "image/png", io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return result.Location, nil
}
