package universe

import (
	"sort"
	"strings"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/errs"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/ast"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/visitor"
)

func identifiersOf(e ast.Expr) []string {
	ids := visitor.Identifiers(e)
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Universe is the read-only-after-load set of all attributes known to a
// run (spec.md §3), with the DAG built once at construction time and
// per-attribute dependency closures cached (Design Notes §9), rather
// than the source's per-call stack-based DFS.
type Universe struct {
	key      string
	attrs    map[string]*Attribute
	order    []string
	depCache map[string][]string
}

// New builds a Universe from its key column code and attribute list,
// validating uniqueness of codes, resolvability of every ref_code, and
// acyclicity, then caching each attribute's transitive dependency
// closure (spec.md §3 invariants; §4.3).
func New(key string, attrs []*Attribute) (*Universe, error) {
	u := &Universe{
		key:      key,
		attrs:    make(map[string]*Attribute, len(attrs)),
		order:    make([]string, 0, len(attrs)),
		depCache: make(map[string][]string, len(attrs)),
	}
	for _, a := range attrs {
		if _, dup := u.attrs[a.Code]; dup {
			return nil, errs.ConfigError.New("duplicate attribute code " + a.Code)
		}
		u.attrs[a.Code] = a
		u.order = append(u.order, a.Code)
	}
	if _, ok := u.attrs[key]; !ok {
		return nil, errs.ConfigError.New("key column " + key + " is not a declared attribute")
	}
	for _, code := range u.order {
		deps, err := u.computeDependencies(code)
		if err != nil {
			return nil, err
		}
		u.depCache[code] = deps
	}
	return u, nil
}

// Key returns the key column's attribute code.
func (u *Universe) Key() string { return u.key }

// Get resolves an attribute by code.
func (u *Universe) Get(code string) (*Attribute, error) {
	a, ok := u.attrs[code]
	if !ok {
		return nil, errs.UnknownAttribute.New(code)
	}
	return a, nil
}

// Inputs returns the codes of every INPUT attribute.
func (u *Universe) Inputs() []string {
	var out []string
	for _, code := range u.order {
		if u.attrs[code].Kind == KindInput {
			out = append(out, code)
		}
	}
	return out
}

// All returns every attribute, in declaration order.
func (u *Universe) All() []*Attribute {
	out := make([]*Attribute, len(u.order))
	for i, code := range u.order {
		out[i] = u.attrs[code]
	}
	return out
}

// Dependencies returns the transitive closure of code's dependencies,
// topologically ordered so that each attribute appears after all of its
// own dependencies (spec.md §4.3), excluding code itself. The result is
// cached at construction time.
func (u *Universe) Dependencies(code string) ([]string, error) {
	if deps, ok := u.depCache[code]; ok {
		return deps, nil
	}
	if _, err := u.Get(code); err != nil {
		return nil, err
	}
	return u.computeDependencies(code)
}

// computeDependencies performs a depth-first traversal from code,
// detecting cycles with a three-state (unvisited/visiting/visited) DFS
// in the style of sqldef's schema/tsort.go topological sort, generalized
// from a flat sort into a per-attribute closure query.
func (u *Universe) computeDependencies(code string) ([]string, error) {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)
	var path []string
	var order []string

	var visit func(c string) error
	visit = func(c string) error {
		if visited[c] {
			return nil
		}
		if visiting[c] {
			cyclePath := append(append([]string{}, path...), c)
			return errs.CyclicUniverse.New(strings.Join(cyclePath, " -> "))
		}
		a, ok := u.attrs[c]
		if !ok {
			return errs.UnknownAttribute.New(c)
		}
		visiting[c] = true
		path = append(path, c)
		for _, dep := range a.DirectDependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		visiting[c] = false
		visited[c] = true
		if c != code {
			order = append(order, c)
		}
		return nil
	}

	if err := visit(code); err != nil {
		return nil, err
	}
	return order, nil
}
