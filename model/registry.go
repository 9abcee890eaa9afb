package model

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// RawMember is member metadata as produced by a Reader. For fields Type is
// the declared type; for methods it is the return type. Types the reader
// could not decode are zero TypeRefs.
type RawMember struct {
	Name      string
	Modifiers Modifiers
	Type      TypeRef
	Params    []TypeRef
}

// RawClass is class metadata as produced by a Reader. Names are qualified
// with dots. Superclass is empty for root classes.
type RawClass struct {
	Name         string
	Modifiers    Modifiers
	Superclass   string
	Interfaces   []string
	Constructors []RawMember
	Fields       []RawMember
	Methods      []RawMember
}

// Reader supplies raw class metadata by qualified name. A missing class
// should be reported with an error wrapping ErrClassNotFound.
type Reader interface {
	ReadClass(name string) (*RawClass, error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(name string) (*RawClass, error)

func (f ReaderFunc) ReadClass(name string) (*RawClass, error) { return f(name) }

// DefaultPreloadLimit bounds the number of classes Preload resolves at once
// when no limit is configured.
var DefaultPreloadLimit = runtime.GOMAXPROCS(0)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for population diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithVisibility sets which members are modeled. The default is
// VisibilityPublic.
func WithVisibility(v Visibility) Option {
	return func(r *Registry) {
		r.visibility = v
	}
}

// WithPreloadLimit bounds Preload concurrency. Non-positive values select
// DefaultPreloadLimit.
func WithPreloadLimit(n int) Option {
	return func(r *Registry) {
		if n <= 0 {
			n = DefaultPreloadLimit
		}
		r.preloadLimit = n
	}
}

// Registry builds each class at most once and shares the result. It is
// safe for concurrent use. When two callers race to build the same class
// the first published Class wins and is returned to both.
type Registry struct {
	reader       Reader
	logger       *slog.Logger
	visibility   Visibility
	preloadLimit int

	// classes maps qualified name to published *Class.
	classes sync.Map
	// failed maps qualified name to the error the reader returned.
	failed sync.Map

	mu    sync.Mutex
	count int
}

// NewRegistry creates a Registry backed by reader.
func NewRegistry(reader Reader, opts ...Option) *Registry {
	r := &Registry{
		reader:       reader,
		logger:       slog.Default(),
		visibility:   VisibilityPublic,
		preloadLimit: DefaultPreloadLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the Class for the qualified name, building and
// publishing it on first use. Repeated calls return the same *Class.
func (r *Registry) Resolve(name string) (*Class, error) {
	return r.resolve(name, nil)
}

// Lookup returns an already published class without consulting the reader.
func (r *Registry) Lookup(name string) (*Class, bool) {
	if v, ok := r.classes.Load(name); ok {
		return v.(*Class), true
	}
	return nil, false
}

// ResolveType resolves the class named by a type reference. Zero,
// primitive and array types have no class.
func (r *Registry) ResolveType(t TypeRef) (*Class, bool) {
	if t.IsZero() || t.IsPrimitive() || t.Dims > 0 {
		return nil, false
	}
	c, err := r.Resolve(t.Name)
	if err != nil {
		return nil, false
	}
	return c, true
}

// Count returns the number of published classes.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Classes yields every published class. Order is unspecified.
func (r *Registry) Classes() iter.Seq[*Class] {
	return func(yield func(*Class) bool) {
		r.classes.Range(func(_, v any) bool {
			return yield(v.(*Class))
		})
	}
}

// Preload resolves names concurrently, bounded by the preload limit. It
// returns the first resolution error, if any; classes resolved before the
// error stay published.
func (r *Registry) Preload(ctx context.Context, names []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.preloadLimit)
	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := r.Resolve(name)
			return err
		})
	}
	return g.Wait()
}

// SuggestClasses resolves the classes among names whose simple name starts
// with prefix and returns them as items, in input order. Anonymous and
// local classes are skipped, as are classes that fail to resolve. A
// positive limit caps the result.
func (r *Registry) SuggestClasses(names iter.Seq[string], prefix string, limit int) []Item {
	var result []Item
	for name := range names {
		simple := simpleName(name)
		if simple == "" || (simple[0] >= '0' && simple[0] <= '9') {
			continue
		}
		if !strings.HasPrefix(simple, prefix) {
			continue
		}
		c, err := r.Resolve(name)
		if err != nil {
			r.logger.Debug("class suggestion skipped", slog.String("class", name), slog.Any("error", err))
			continue
		}
		result = append(result, c)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result
}

func (r *Registry) resolve(name string, chain []string) (*Class, error) {
	if c, ok := r.Lookup(name); ok {
		return c, nil
	}
	if v, ok := r.failed.Load(name); ok {
		return nil, v.(error)
	}
	if slices.Contains(chain, name) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrCyclicHierarchy, strings.Join(chain, " -> "), name)
	}

	raw, err := r.reader.ReadClass(name)
	if err == nil && raw == nil {
		err = fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}
	if err == nil && raw.Name != name {
		err = fmt.Errorf("%w: asked for %s, got %s", ErrNameMismatch, name, raw.Name)
	}
	if err != nil {
		err = fmt.Errorf("model: resolving %s: %w", name, err)
		v, _ := r.failed.LoadOrStore(name, err)
		return nil, v.(error)
	}

	c := r.populate(raw, append(slices.Clone(chain), name))
	return r.publish(c), nil
}

// populate builds a Class from raw metadata. Unresolvable supertypes and
// interfaces are recorded by name; the rest of the class is still modeled.
func (r *Registry) populate(raw *RawClass, chain []string) *Class {
	b := NewBuilder(raw.Name, raw.Modifiers)

	if raw.Superclass != "" {
		super, err := r.resolve(raw.Superclass, chain)
		if err != nil {
			r.logger.Debug("superclass unresolved",
				slog.String("class", raw.Name),
				slog.String("superclass", raw.Superclass),
				slog.Any("error", err),
			)
			b.SetUnresolvedSuperclass(raw.Superclass)
		} else {
			b.SetSuperclass(super)
		}
	}

	for _, name := range raw.Interfaces {
		iface, err := r.resolve(name, chain)
		if err != nil {
			r.logger.Debug("interface unresolved",
				slog.String("class", raw.Name),
				slog.String("interface", name),
				slog.Any("error", err),
			)
			b.AddUnresolvedInterface(name)
			continue
		}
		b.AddInterface(iface)
	}

	ctorName := simpleName(raw.Name)
	for _, m := range raw.Constructors {
		if r.eligible(m.Modifiers) {
			b.AddConstructor(NewConstructor(ctorName, m.Modifiers, m.Params))
		}
	}
	for _, m := range raw.Fields {
		if r.eligible(m.Modifiers) {
			b.AddField(NewField(m.Name, m.Modifiers, m.Type))
		}
	}
	for _, m := range raw.Methods {
		if r.eligible(m.Modifiers) && !m.Modifiers.Has(Bridge) {
			b.AddMethod(NewMethod(m.Name, m.Modifiers&^(Bridge|Varargs), m.Type, m.Params))
		}
	}

	return b.Build()
}

func (r *Registry) eligible(mods Modifiers) bool {
	return !mods.Has(Synthetic) && r.visibility.Allows(mods)
}

func (r *Registry) publish(c *Class) *Class {
	v, loaded := r.classes.LoadOrStore(c.name, c)
	if loaded {
		return v.(*Class)
	}

	r.mu.Lock()
	r.count++
	r.mu.Unlock()

	r.logger.Debug("class published",
		slog.String("class", c.name),
		slog.Int("constructors", len(c.constructors)),
		slog.Int("fields", len(c.fields)),
		slog.Int("methods", len(c.methods)),
		slog.Bool("superclass_unresolved", c.SuperclassUnresolved()),
	)
	return c
}

// IsNotFound reports whether err means a class does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClassNotFound)
}
