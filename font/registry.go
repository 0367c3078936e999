package font

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/textflow/glyphcache"
	"github.com/gogpu/textflow/internal/cache"
)

// faceKey identifies one OpenTypeFace in the registry.
type faceKey struct {
	name   string
	size   float64
	config faceConfig
}

// Registry owns font sources, the faces created from them and the glyph
// cache they share. It is passed explicitly to whatever needs faces; there
// is no process-wide font manager.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	sources   map[string]*Source
	faces     *cache.Cache[faceKey, *OpenTypeFace]
	glyphs    *glyphcache.Cache
	antialias bool
	closed    bool
	logger    *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	def := DefaultRegistryConfig()
	if cfg.CacheCapacity <= 0 {
		cfg.CacheCapacity = def.CacheCapacity
	}
	if cfg.FaceLimit <= 0 {
		cfg.FaceLimit = def.FaceLimit
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &Registry{
		sources:   make(map[string]*Source),
		faces:     cache.New[faceKey, *OpenTypeFace](cfg.FaceLimit),
		glyphs:    glyphcache.New(glyphcache.Config{Capacity: cfg.CacheCapacity, Logger: logger}),
		antialias: true,
		logger:    logger,
	}
	r.faces.OnEvict(func(k faceKey, f *OpenTypeFace) {
		logger.Debug("font: closing evicted face", "font", k.name, "size", k.size)
		_ = f.Close()
	})
	return r
}

// Register makes src available under name. An existing registration with
// the same name is replaced; faces already created from it stay valid.
func (r *Registry) Register(name string, src *Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}
	r.sources[name] = src
	return nil
}

// RegisterData parses data and registers it under name. An empty name
// registers the font under its own full name.
func (r *Registry) RegisterData(name string, data []byte) (*Source, error) {
	src, err := NewSource(data)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = src.Name()
	}
	if err := r.Register(name, src); err != nil {
		return nil, err
	}
	return src, nil
}

// Len returns the number of registered fonts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sources)
}

// FaceStats describes the registry's cache of open faces.
type FaceStats struct {
	Open   int
	Limit  int
	Hits   uint64
	Misses uint64
	// Evictions counts faces closed to stay within Limit.
	Evictions uint64
}

// OpenFaces returns the number of faces currently open.
func (r *Registry) OpenFaces() int {
	return r.faces.Len()
}

// FaceStats returns statistics of the face cache.
func (r *Registry) FaceStats() FaceStats {
	s := r.faces.Stats()
	return FaceStats{
		Open:      s.Len,
		Limit:     r.faces.Capacity(),
		Hits:      s.Hits,
		Misses:    s.Misses,
		Evictions: s.Evictions,
	}
}

// Face returns the face of the named font at size pixels. Faces are
// shared: asking twice with equal arguments returns the same face while it
// stays among the most recently requested ones.
func (r *Registry) Face(name string, size float64, opts ...FaceOption) (*OpenTypeFace, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}
	src, ok := r.sources[name]
	if !ok {
		return nil, &UnknownFontError{Name: name}
	}

	config := defaultFaceConfig()
	config.antialias = r.antialias
	for _, opt := range opts {
		opt(&config)
	}

	key := faceKey{name: name, size: size, config: config}
	if f, ok := r.faces.Get(key); ok {
		return f, nil
	}
	f, err := newOpenTypeFace(src, size, config, r.glyphs, r.logger)
	if err != nil {
		return nil, fmt.Errorf("font: failed to create face %q at %g: %w", name, size, err)
	}
	r.faces.Set(key, f)
	r.logger.Debug("font: face created", "font", name, "size", size, "id", f.ID())
	return f, nil
}

// NewFixedFace creates a synthetic face sharing the registry's glyph cache.
func (r *Registry) NewFixedFace(m FixedMetrics) *FixedFace {
	return NewFixedFace(m, r.glyphs)
}

// SetAntialias switches the antialiasing mode of every face, current and
// future. The whole glyph cache is cleared at once instead of face by face.
func (r *Registry) SetAntialias(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.antialias == on {
		return
	}
	r.antialias = on

	var keys []faceKey
	var faces []*OpenTypeFace
	r.faces.Range(func(k faceKey, f *OpenTypeFace) bool {
		keys = append(keys, k)
		faces = append(faces, f)
		return true
	})
	// Re-key from least to most recently used so recency survives.
	for i := len(keys) - 1; i >= 0; i-- {
		faces[i].setAntialiasQuiet(on)
		r.faces.Delete(keys[i])
		keys[i].config.antialias = on
		r.faces.Set(keys[i], faces[i])
	}
	r.glyphs.Clear()
	r.logger.Debug("font: antialias changed", "on", on)
}

// GlyphCache returns the glyph cache shared by the registry's faces.
func (r *Registry) GlyphCache() *glyphcache.Cache {
	return r.glyphs
}

// Close closes every face and forgets every source. Faces obtained before
// Close keep working without glyph caching.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	r.faces.Range(func(_ faceKey, f *OpenTypeFace) bool {
		_ = f.Close()
		return true
	})
	r.faces.Clear()
	clear(r.sources)
	r.glyphs.Clear()
	return nil
}
