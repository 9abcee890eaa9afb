// Package classpath reads compiled classes from directories and jar/zip
// archives and serves them to a model.Registry.
package classpath

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/javaide/classview/internal/classfile"
	"github.com/javaide/classview/internal/descriptor"
	"github.com/javaide/classview/model"
)

// Sentinel errors.
var (
	// ErrClosed indicates the Path has been closed.
	ErrClosed = errors.New("classpath: path is closed")

	// ErrInvalidEntry indicates an entry that is neither a directory nor an archive.
	ErrInvalidEntry = errors.New("classpath: entry is not a directory, jar or zip")
)

const classSuffix = ".class"

// entry is one classpath element.
type entry struct {
	location string
	fsys     fs.FS
	closer   io.Closer // nil for directories
}

// Option configures a Path.
type Option func(*Path)

// WithExclude hides classes whose class file path (e.g.
// "com/example/internal/Impl.class") matches any of the gitignore-style
// patterns.
func WithExclude(patterns ...string) Option {
	return func(p *Path) {
		if len(patterns) > 0 {
			p.exclude = ignore.CompileIgnoreLines(patterns...)
		}
	}
}

// Path is an ordered set of classpath entries. Earlier entries shadow later
// ones. It implements model.Reader and is safe for concurrent use.
type Path struct {
	entries []entry
	exclude *ignore.GitIgnore

	mu     sync.RWMutex
	closed bool
}

// Open opens each classpath entry. Directories are read in place; files
// ending in .jar or .zip are opened as archives.
func Open(locations []string, opts ...Option) (*Path, error) {
	p := &Path{}
	for _, opt := range opts {
		opt(p)
	}

	for _, loc := range locations {
		e, err := openEntry(loc)
		if err != nil {
			p.Close()
			return nil, err
		}
		p.entries = append(p.entries, e)
	}
	return p, nil
}

// FromFS creates a Path over already opened file systems, in order.
// The caller keeps ownership of them.
func FromFS(fsyss ...fs.FS) *Path {
	p := &Path{}
	for i, fsys := range fsyss {
		p.entries = append(p.entries, entry{location: fmt.Sprintf("fs#%d", i), fsys: fsys})
	}
	return p
}

func openEntry(loc string) (entry, error) {
	info, err := os.Stat(loc)
	if err != nil {
		return entry{}, fmt.Errorf("classpath: failed to open %s: %w", loc, err)
	}
	if info.IsDir() {
		return entry{location: loc, fsys: os.DirFS(loc)}, nil
	}

	switch strings.ToLower(filepath.Ext(loc)) {
	case ".jar", ".zip":
		zr, err := zip.OpenReader(loc)
		if err != nil {
			return entry{}, fmt.Errorf("classpath: failed to open archive %s: %w", loc, err)
		}
		return entry{location: loc, fsys: zr, closer: zr}, nil
	default:
		return entry{}, fmt.Errorf("%w: %s", ErrInvalidEntry, loc)
	}
}

// Close releases open archives.
func (p *Path) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	for _, e := range p.entries {
		if e.closer != nil {
			errs = append(errs, e.closer.Close())
		}
	}
	return errors.Join(errs...)
}

// Locations returns the entry locations in lookup order.
func (p *Path) Locations() []string {
	locs := make([]string, len(p.entries))
	for i, e := range p.entries {
		locs[i] = e.location
	}
	return locs
}

func (p *Path) excluded(rel string) bool {
	return p.exclude != nil && p.exclude.MatchesPath(rel)
}

// ReadClass locates and parses the class with the given qualified name.
// Nested classes use '$' ("java.util.Map$Entry").
func (p *Path) ReadClass(name string) (*model.RawClass, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrClosed
	}

	rel := descriptor.QualifiedToBinary(name) + classSuffix
	if !p.excluded(rel) {
		for _, e := range p.entries {
			data, err := fs.ReadFile(e.fsys, rel)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("classpath: reading %s from %s: %w", rel, e.location, err)
			}

			f, err := classfile.Parse(data)
			if err != nil {
				return nil, fmt.Errorf("classpath: %s in %s: %w", rel, e.location, err)
			}
			return toRaw(f), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", model.ErrClassNotFound, name)
}

// Classes yields the qualified name of every visible class, in entry order.
// Shadowed duplicates, excluded paths, module-info and package-info are
// skipped.
func (p *Path) Classes() iter.Seq[string] {
	return func(yield func(string) bool) {
		p.mu.RLock()
		defer p.mu.RUnlock()
		if p.closed {
			return
		}

		seen := make(map[string]bool)
		for _, e := range p.entries {
			stop := false
			_ = fs.WalkDir(e.fsys, ".", func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return nil // skip unreadable parts
				}
				if d.IsDir() || !strings.HasSuffix(path, classSuffix) {
					return nil
				}
				base := strings.TrimSuffix(filepath.Base(path), classSuffix)
				if base == "module-info" || base == "package-info" {
					return nil
				}
				if seen[path] || p.excluded(path) {
					return nil
				}
				seen[path] = true

				if !yield(descriptor.BinaryToQualified(strings.TrimSuffix(path, classSuffix))) {
					stop = true
					return fs.SkipAll
				}
				return nil
			})
			if stop {
				return
			}
		}
	}
}

// toRaw converts a parsed class file into raw model metadata. Types that
// fail to decode produce zero TypeRefs rather than errors.
func toRaw(f *classfile.File) *model.RawClass {
	raw := &model.RawClass{
		Name: descriptor.BinaryToQualified(f.ThisClass),
		// ACC_SUPER shares its bit with synchronized and carries no meaning here.
		Modifiers: model.Modifiers(f.AccessFlags) &^ model.Synchronized,
	}
	if f.SuperClass != "" {
		raw.Superclass = descriptor.BinaryToQualified(f.SuperClass)
	}
	for _, iface := range f.Interfaces {
		raw.Interfaces = append(raw.Interfaces, descriptor.BinaryToQualified(iface))
	}

	for _, fld := range f.Fields {
		typ, _ := descriptor.ParseField(fld.Descriptor)
		raw.Fields = append(raw.Fields, model.RawMember{
			Name:      fld.Name,
			Modifiers: model.Modifiers(fld.AccessFlags),
			Type:      typeRef(typ),
		})
	}

	for _, m := range f.Methods {
		if m.Name == classfile.ClinitName {
			continue
		}
		// Undecodable slots come back as zero types; the arity is kept.
		params, ret, _ := descriptor.ParseMethodPartial(m.Descriptor)
		member := model.RawMember{
			Name:      m.Name,
			Modifiers: model.Modifiers(m.AccessFlags),
			Type:      typeRef(ret),
		}
		if params != nil {
			member.Params = make([]model.TypeRef, len(params))
			for i, p := range params {
				member.Params[i] = typeRef(p)
			}
		}

		if m.Name == classfile.InitName {
			raw.Constructors = append(raw.Constructors, member)
		} else {
			raw.Methods = append(raw.Methods, member)
		}
	}
	return raw
}

func typeRef(t descriptor.Type) model.TypeRef {
	return model.TypeRef{Name: t.Name, Dims: t.Dims}
}
