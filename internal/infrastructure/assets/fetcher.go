// Package assets resolves catalog image references into embeddable images.
//
// A reference may be an absolute http(s) URL, an s3://bucket/key URI, a
// base64 data: URI or a site-relative path such as /products/x.jpg. Site
// paths are served from the local asset directory when the file exists and
// from the public base URL otherwise.
package assets

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/color"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/catalogsheet"
	"go.uber.org/zap"
)

// Fetch defaults
const (
	DefaultTimeout      = 15 * time.Second
	DefaultMaxBytes     = 10 << 20
	DefaultMaxDimension = 600
	DefaultQuality      = 85
)

var (
	ErrUnsupportedRef = errors.New("unsupported image reference")
	ErrTooLarge       = errors.New("image exceeds size limit")
	ErrNoSource       = errors.New("no asset source configured")
)

// ObjectReader reads objects from S3-compatible storage
type ObjectReader interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// Config controls where images come from and how they are normalised
type Config struct {
	BaseDir      string
	BaseURL      string
	Timeout      time.Duration
	MaxBytes     int64
	MaxDimension int
	Quality      int
	Matte        color.Color
}

// Fetcher turns image references into embeddable images. It never fails:
// anything that goes wrong is logged and reported as a missing image.
type Fetcher struct {
	cfg     Config
	client  *http.Client
	objects ObjectReader
	logger  *zap.Logger
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithObjectReader enables s3:// references
func WithObjectReader(r ObjectReader) Option {
	return func(f *Fetcher) {
		f.objects = r
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a Fetcher, filling unset limits with defaults
func NewFetcher(cfg Config, opts ...Option) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.MaxDimension <= 0 {
		cfg.MaxDimension = DefaultMaxDimension
	}
	if cfg.Quality <= 0 {
		cfg.Quality = DefaultQuality
	}
	f := &Fetcher{
		cfg:    cfg,
		client: &http.Client{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchEmbeddable loads and normalises the image behind ref. It returns nil
// for placeholder refs and on any failure.
func (f *Fetcher) FetchEmbeddable(ctx context.Context, ref string) *catalogsheet.Image {
	ref = strings.TrimSpace(ref)
	if catalog.IsPlaceholderRef(ref) {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	start := time.Now()
	raw, err := f.load(ctx, ref)
	if err != nil {
		f.logger.Warn("failed to fetch item image",
			zap.String("ref", ref),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil
	}

	img, err := Normalize(raw, NormalizeOptions{
		MaxDimension: f.cfg.MaxDimension,
		Quality:      f.cfg.Quality,
		Matte:        f.cfg.Matte,
	})
	if err != nil {
		f.logger.Warn("failed to decode item image",
			zap.String("ref", ref),
			zap.Int("bytes", len(raw)),
			zap.Error(err),
		)
		return nil
	}

	f.logger.Debug("item image fetched",
		zap.String("ref", ref),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("bytes", len(img.Data)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return img
}

func (f *Fetcher) load(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "data:") {
		return f.decodeDataURI(ref)
	}

	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedRef, err)
	}

	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, u.String())
	case "s3":
		return f.fetchObject(ctx, u)
	case "":
		return f.fetchSitePath(ctx, u.Path)
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedRef, u.Scheme)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}
	return f.readLimited(resp.Body)
}

func (f *Fetcher) fetchObject(ctx context.Context, u *url.URL) ([]byte, error) {
	if f.objects == nil {
		return nil, fmt.Errorf("%w: s3 storage disabled", ErrNoSource)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return nil, fmt.Errorf("%w: s3 uri needs bucket and key", ErrUnsupportedRef)
	}
	data, err := f.objects.GetObject(ctx, u.Host, key)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.cfg.MaxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// fetchSitePath serves /products/x.jpg from the local asset directory,
// falling back to the public origin.
func (f *Fetcher) fetchSitePath(ctx context.Context, p string) ([]byte, error) {
	clean := path.Clean("/" + p)
	if f.cfg.BaseDir != "" {
		local := filepath.Join(f.cfg.BaseDir, filepath.FromSlash(clean))
		if info, err := os.Stat(local); err == nil && info.Mode().IsRegular() {
			file, err := os.Open(local)
			if err != nil {
				return nil, fmt.Errorf("open asset: %w", err)
			}
			defer file.Close()
			return f.readLimited(file)
		}
	}
	if f.cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w for %s", ErrNoSource, clean)
	}
	return f.fetchHTTP(ctx, strings.TrimRight(f.cfg.BaseURL, "/")+clean)
}

func (f *Fetcher) decodeDataURI(ref string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: malformed data uri", ErrUnsupportedRef)
	}
	var data []byte
	if strings.HasSuffix(header, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode data uri: %w", err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("decode data uri: %w", err)
		}
		data = []byte(unescaped)
	}
	if int64(len(data)) > f.cfg.MaxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

func (f *Fetcher) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, f.cfg.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > f.cfg.MaxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}
