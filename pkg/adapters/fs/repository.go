package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/inspekt/pkg/core"
)

const (
	// DefaultMetadataFormat is the extension of newly written metadata.
	DefaultMetadataFormat = ".json"

	// maxTokenAttempts bounds the search for an unused token on commit.
	maxTokenAttempts = 1000
)

// Repository implements core.Store on a single flat directory.
type Repository struct {
	Path        string
	config      Config
	serializers map[string]Serializer

	mu            sync.RWMutex
	lastToken     core.Token
	watcherActive bool
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path           string
	MustExist      bool
	ReadOnly       bool
	Logger         *slog.Logger
	MetadataFormat string           // Extension of written metadata, e.g. ".json" or ".yaml"
	Tokens         core.TokenSource // Defaults to a wall clock
	ErrorHandler   func(error)      // Receives watcher runtime errors
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Tokens == nil {
		config.Tokens = core.NewClock(nil)
	}
	if config.MetadataFormat == "" {
		config.MetadataFormat = DefaultMetadataFormat
	}
	if !strings.HasPrefix(config.MetadataFormat, ".") {
		config.MetadataFormat = "." + config.MetadataFormat
	}
	return &Repository{
		Path:        config.Path,
		config:      config,
		serializers: DefaultSerializers(),
	}
}

// RegisterSerializer adds or replaces the serializer for an extension.
func (r *Repository) RegisterSerializer(ext string, s Serializer) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.serializers[ext] = s
}

// Initialize ensures the root storage directory exists, creating missing
// intermediate directories. Calling it again once the directory exists is a no-op.
func (r *Repository) Initialize(ctx context.Context) error {
	if _, ok := r.serializer(r.config.MetadataFormat); !ok {
		return fmt.Errorf("no serializer registered for metadata format %q", r.config.MetadataFormat)
	}

	info, err := os.Stat(r.Path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: storage path is not a directory: %s", core.ErrPersistenceFailed, r.Path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("%w: %w", core.ErrPersistenceFailed, err)
	}

	if r.config.MustExist {
		return fmt.Errorf("%w: storage path does not exist: %s", core.ErrPersistenceFailed, r.Path)
	}
	if r.config.ReadOnly {
		// Nothing to read yet; selection will report NotFound.
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("%w: failed to create storage directory: %w", core.ErrPersistenceFailed, err)
	}
	r.config.Logger.Debug("storage directory created", "path", r.Path)
	return nil
}

// Commit persists a capture record as a photo + metadata pair.
//
// Workflow:
//  1. Normalize the form (closed category, trimmed text).
//  2. Draw one token and advance it past any name already on disk.
//  3. Move the transient photo to photo_<token>.jpg (never overwriting).
//  4. Write metadata_<token>.<ext> with the same token.
//
// A failure in step 4 leaves the photo as an orphan; selection ignores it.
func (r *Repository) Commit(ctx context.Context, photo core.PhotoHandle, form core.FormState) (core.CaptureRecord, error) {
	if r.config.ReadOnly {
		return core.CaptureRecord{}, core.ErrReadOnly
	}

	form, err := form.Normalize()
	if err != nil {
		return core.CaptureRecord{}, err
	}

	if photo.Path == "" {
		return core.CaptureRecord{}, fmt.Errorf("%w: empty photo handle", core.ErrCaptureFailed)
	}
	if _, err := os.Stat(photo.Path); err != nil {
		return core.CaptureRecord{}, fmt.Errorf("%w: transient photo: %w", core.ErrCaptureFailed, err)
	}

	serializer, ok := r.serializer(r.config.MetadataFormat)
	if !ok {
		return core.CaptureRecord{}, fmt.Errorf("%w: no serializer for %q", core.ErrPersistenceFailed, r.config.MetadataFormat)
	}

	tok, err := r.nextFreeToken()
	if err != nil {
		return core.CaptureRecord{}, err
	}

	rec := core.CaptureRecord{
		PhotoRef:       PhotoName(tok),
		TechnicianName: form.TechnicianName,
		Description:    form.Description,
		LocationLabel:  form.LocationLabel,
		Category:       form.Category,
		CreatedAt:      tok,
	}

	photoPath := filepath.Join(r.Path, rec.PhotoRef)
	removed, err := moveFileExclusive(photo.Path, photoPath, 0644)
	if err != nil {
		return core.CaptureRecord{}, fmt.Errorf("%w: failed to store photo: %w", core.ErrPersistenceFailed, err)
	}
	if !removed {
		r.config.Logger.Warn("transient photo could not be removed", "path", photo.Path)
	}

	data, err := serializer.Serialize(NewMetadata(rec))
	if err == nil {
		err = writeFileExclusive(filepath.Join(r.Path, MetadataName(tok, r.config.MetadataFormat)), data, 0644)
	}
	if err != nil {
		r.config.Logger.Error("metadata not written, photo left without record", "photo", photoPath, "error", err)
		return core.CaptureRecord{}, fmt.Errorf("%w: failed to write metadata: %w", core.ErrPersistenceFailed, err)
	}

	r.mu.Lock()
	r.lastToken = tok
	r.mu.Unlock()

	r.config.Logger.Info("capture committed", "token", tok, "photo", rec.PhotoRef, "category", rec.Category)
	return rec, nil
}

// nextFreeToken draws tokens until neither artifact name is taken.
func (r *Repository) nextFreeToken() (core.Token, error) {
	for i := 0; i < maxTokenAttempts; i++ {
		tok := r.config.Tokens.Next()
		if !r.tokenTaken(tok) {
			return tok, nil
		}
		r.config.Logger.Debug("token already used on disk, advancing", "token", tok)
	}
	return 0, fmt.Errorf("%w: no free token after %d attempts", core.ErrPersistenceFailed, maxTokenAttempts)
}

func (r *Repository) tokenTaken(tok core.Token) bool {
	if exists(filepath.Join(r.Path, PhotoName(tok))) {
		return true
	}
	for _, ext := range r.metadataExts() {
		if exists(filepath.Join(r.Path, MetadataName(tok, ext))) {
			return true
		}
	}
	return false
}

// SelectMostRecent returns the valid record with the numerically largest
// token. Photos without readable, exactly paired metadata are skipped.
func (r *Repository) SelectMostRecent(ctx context.Context) (core.CaptureRecord, error) {
	tokens, err := r.photoTokens()
	if err != nil {
		return core.CaptureRecord{}, err
	}

	for _, tok := range tokens {
		if err := ctx.Err(); err != nil {
			return core.CaptureRecord{}, err
		}
		rec, err := r.loadRecord(tok)
		if err != nil {
			r.config.Logger.Warn("skipping photo without valid metadata", "token", tok, "error", err)
			continue
		}
		return rec, nil
	}
	return core.CaptureRecord{}, core.ErrNotFound
}

// List returns all valid records, newest first.
func (r *Repository) List(ctx context.Context) ([]core.CaptureRecord, error) {
	tokens, err := r.photoTokens()
	if err != nil {
		return nil, err
	}

	var recs []core.CaptureRecord
	for _, tok := range tokens {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.loadRecord(tok)
		if err != nil {
			r.config.Logger.Debug("skipping photo without valid metadata", "token", tok, "error", err)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Orphans returns, newest first, the tokens of photos that have no valid
// metadata. They are left on disk.
func (r *Repository) Orphans(ctx context.Context) ([]core.Token, error) {
	tokens, err := r.photoTokens()
	if err != nil {
		return nil, err
	}

	var orphans []core.Token
	for _, tok := range tokens {
		if _, err := r.loadRecord(tok); err != nil {
			orphans = append(orphans, tok)
		}
	}
	return orphans, nil
}

// ReadPhoto returns the bytes of rec's photo artifact.
func (r *Repository) ReadPhoto(ctx context.Context, rec core.CaptureRecord) ([]byte, error) {
	name := filepath.Base(rec.PhotoRef)
	if name != rec.PhotoRef || name == "." {
		return nil, fmt.Errorf("invalid photo reference %q", rec.PhotoRef)
	}
	return os.ReadFile(filepath.Join(r.Path, name))
}

// WriteNew persists data under name in the root directory and returns the
// full path. It never replaces a file: a taken name yields an error matching
// os.ErrExist.
func (r *Repository) WriteNew(ctx context.Context, name string, data []byte) (string, error) {
	if r.config.ReadOnly {
		return "", core.ErrReadOnly
	}
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: invalid file name %q", core.ErrPersistenceFailed, name)
	}

	path := filepath.Join(r.Path, name)
	if err := writeFileExclusive(path, data, 0644); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", core.ErrPersistenceFailed, err)
	}
	return path, nil
}

// photoTokens lists photo artifact tokens, largest first.
func (r *Repository) photoTokens() ([]core.Token, error) {
	entries, err := os.ReadDir(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to list storage directory: %w", core.ErrPersistenceFailed, err)
	}

	var tokens []core.Token
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if tok, ok := ParsePhotoName(e.Name()); ok {
			tokens = append(tokens, tok)
		}
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] > tokens[j] })
	return tokens, nil
}

// loadRecord pairs the photo for tok with its metadata. Pairing is by exact
// token only: a metadata body carrying a different createdAt is rejected.
func (r *Repository) loadRecord(tok core.Token) (core.CaptureRecord, error) {
	for _, ext := range r.metadataExts() {
		path := filepath.Join(r.Path, MetadataName(tok, ext))
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return core.CaptureRecord{}, err
		}

		serializer, _ := r.serializer(ext)
		m, err := serializer.Parse(bytes.NewReader(data))
		if err != nil {
			return core.CaptureRecord{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		if m.CreatedAt != 0 && core.Token(m.CreatedAt) != tok {
			return core.CaptureRecord{}, fmt.Errorf("token mismatch: file %d, body %d", tok, m.CreatedAt)
		}

		category, err := core.ParseCategory(m.Category)
		if err != nil {
			r.config.Logger.Warn("record has a category outside the closed set", "token", tok, "category", m.Category)
		}

		return core.CaptureRecord{
			PhotoRef:       PhotoName(tok),
			TechnicianName: m.TechnicianName,
			Description:    m.Description,
			LocationLabel:  m.LocationLabel,
			Category:       category,
			CreatedAt:      tok,
		}, nil
	}
	return core.CaptureRecord{}, fmt.Errorf("no metadata for token %d", tok)
}

// metadataExts returns the registered extensions, the configured format first.
func (r *Repository) metadataExts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := []string{r.config.MetadataFormat}
	var rest []string
	for ext := range r.serializers {
		if ext != r.config.MetadataFormat {
			rest = append(rest, ext)
		}
	}
	sort.Strings(rest)
	return append(exts, rest...)
}

func (r *Repository) serializer(ext string) (Serializer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.serializers[ext]
	return s, ok
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

var _ core.Store = (*Repository)(nil)
var _ core.PhotoReader = (*Repository)(nil)
var _ core.OrphanLister = (*Repository)(nil)
