package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/lottiescan/internal/lottie"
	"github.com/scan-io-git/lottiescan/pkg/shared/config"
)

var (
	// ErrNotJSON is returned when a document cannot be decoded as JSON.
	ErrNotJSON = errors.New("could not parse document, make sure it is valid JSON")
	// ErrNotAnimation is returned when a JSON document lacks the Lottie markers.
	ErrNotAnimation = errors.New("not a valid Lottie file")
	// ErrTooLarge is returned when a document exceeds the configured size limit.
	ErrTooLarge = errors.New("document exceeds the maximum size")
)

// Animation is a loaded, self-contained Lottie animation.
type Animation struct {
	Source        string
	Name          string
	Container     bool
	Version       string
	SemVer        *semver.Version
	Document      *lottie.Document
	InlinedImages int

	raw map[string]any
}

// Loader fetches animations from local paths, http(s) URLs and s3:// objects.
type Loader struct {
	logger  hclog.Logger
	http    *resty.Client
	s3      ObjectGetter
	maxSize int64
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for debug output.
func WithLogger(logger hclog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithHTTPClient enables http(s) sources.
func WithHTTPClient(client *resty.Client) Option {
	return func(l *Loader) { l.http = client }
}

// WithObjectGetter enables s3:// sources.
func WithObjectGetter(getter ObjectGetter) Option {
	return func(l *Loader) { l.s3 = getter }
}

// WithMaxDocumentSize limits how many bytes are read from a source.
func WithMaxDocumentSize(size int64) Option {
	return func(l *Loader) {
		if size > 0 {
			l.maxSize = size
		}
	}
}

// New returns a Loader. Only local files are supported unless an HTTP client or an
// object getter is configured.
func New(opts ...Option) *Loader {
	l := &Loader{
		logger:  hclog.NewNullLogger(),
		maxSize: config.DefaultMaxDocumentSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches source and decodes it into an Animation.
func (l *Loader) Load(ctx context.Context, source string) (*Animation, error) {
	l.logger.Debug("loading document", "source", source)

	data, err := l.fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", source, err)
	}
	return l.Decode(source, data)
}

// Decode turns raw bytes read from source into an Animation. Zip archives and
// sources ending in .lottie are opened as dotLottie containers.
func (l *Loader) Decode(source string, data []byte) (*Animation, error) {
	anim := &Animation{Source: source}

	payload := data
	var images map[string][]byte
	if isContainer(source, data) {
		c, err := openContainer(data, l.maxSize)
		if err != nil {
			return nil, fmt.Errorf("failed to open dotLottie %q: %w", source, err)
		}
		l.logger.Debug("opened dotLottie container", "source", source, "animation", c.animationPath, "images", len(c.images))
		anim.Container = true
		payload = c.animation
		images = c.images
	}

	value, err := lottie.DecodeValue(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotJSON, err)
	}
	root, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrNotAnimation, lottie.ErrInvalidDocument)
	}
	if err := validateMarkers(root); err != nil {
		return nil, err
	}

	if len(images) > 0 {
		anim.InlinedImages = inlineImages(root, images)
		l.logger.Debug("inlined image assets", "source", source, "count", anim.InlinedImages)
	}

	doc, err := lottie.FromValue(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAnimation, err)
	}

	anim.raw = root
	anim.Document = doc
	anim.Version = doc.Version
	if v, err := semver.NewVersion(doc.Version); err == nil {
		anim.SemVer = v
	} else {
		l.logger.Debug("unparsable version marker", "source", source, "version", doc.Version)
	}
	anim.Name = doc.Name
	if anim.Name == "" {
		anim.Name = sourceBase(source)
	}

	return anim, nil
}

// JSON returns the animation as a self-contained Lottie document.
func (a *Animation) JSON() ([]byte, error) {
	if a == nil || a.raw == nil {
		return nil, fmt.Errorf("animation has no document")
	}
	return json.MarshalIndent(a.raw, "", "  ")
}

// validateMarkers requires a non-empty "v" and a "layers" array.
func validateMarkers(root map[string]any) error {
	switch v := root["v"].(type) {
	case string:
		if v == "" {
			return fmt.Errorf("%w: empty version marker", ErrNotAnimation)
		}
	case nil:
		return fmt.Errorf("%w: missing version marker", ErrNotAnimation)
	default:
		return fmt.Errorf("%w: version marker must be a string", ErrNotAnimation)
	}

	if _, ok := root["layers"].([]any); !ok {
		return fmt.Errorf("%w: missing layers", ErrNotAnimation)
	}
	return nil
}

func sourceBase(source string) string {
	if kind, _ := sourceKind(source); kind != kindFile {
		trimmed := source
		if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
			trimmed = trimmed[:i]
		}
		return path.Base(strings.TrimRight(trimmed, "/"))
	}
	return filepath.Base(source)
}
