package naming

import "fmt"

// Resolver owns a node's base path and its derived namespace (the base
// path's parent), plus a remapping Mapper. It resolves absolute ("/foo"),
// private ("~foo") and relative ("foo") names against that scope.
type Resolver struct {
	path      Path
	namespace Path
	mapper    *Mapper
}

// NewResolver parses name as the resolver's base path. It fails with
// ErrInvalidName on any path rule violation, or if name is the root path
// (which has no parent to serve as a namespace).
func NewResolver(name string) (*Resolver, error) {
	path, err := ParsePath(name)
	if err != nil {
		return nil, err
	}
	namespace, err := path.Parent()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidName, err)
	}
	return &Resolver{
		path:      path,
		namespace: namespace,
		mapper:    NewMapper(),
	}, nil
}

// resolve applies the name resolution rules:
//   - empty name -> ErrEmptyName
//   - leading '/' -> parsed as an absolute path
//   - leading '~' -> base path + "/" + rest, then parsed
//   - otherwise -> namespace + "/" + name, then parsed
func (r *Resolver) resolve(name string) (Path, error) {
	if name == "" {
		return Path{}, ErrEmptyName
	}

	switch name[0] {
	case '/':
		return ParsePath(name)
	case '~':
		return r.concatParse(r.path, name[1:])
	default:
		return r.concatParse(r.namespace, name)
	}
}

func (r *Resolver) concatParse(base Path, rest string) (Path, error) {
	suffix, err := ParsePath("/" + rest)
	if err != nil {
		return Path{}, err
	}
	return base.Join(suffix), nil
}

// Map resolves source and destination in the resolver's scope and
// inserts source -> destination into the mapper. Both resolved forms
// become absolute paths before insertion.
func (r *Resolver) Map(source, destination string) error {
	src, err := r.resolve(source)
	if err != nil {
		return fmt.Errorf("naming: resolving source %q: %w", source, err)
	}
	dst, err := r.resolve(destination)
	if err != nil {
		return fmt.Errorf("naming: resolving destination %q: %w", destination, err)
	}
	r.mapper.Add(src.Segments(), dst)
	return nil
}

// Translate resolves name, looks it up in the mapper, and returns the
// mapped destination's textual form if present, otherwise the resolved
// name's own textual form. It never fails once name parses.
func (r *Resolver) Translate(name string) (string, error) {
	path, err := r.resolve(name)
	if err != nil {
		return "", err
	}
	if dst, ok := r.mapper.Translate(path.Segments()); ok {
		return dst.String(), nil
	}
	return path.String(), nil
}
