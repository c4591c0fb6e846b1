package templates

import (
	"strings"
	"sync"

	"dtc-go/packages/compiler/util"
)

// ViewOptions describes how a view is registered
type ViewOptions struct {
	// Element is a space separated list of custom tags rendering this view
	Element string
	// Attributes is a space separated list of declared attribute names
	Attributes string
	// Arrays is a space separated list of `tag/attribute` array declarations.
	// A bare `tag` collects entries under an attribute named like the tag.
	Arrays string
	// String marks a plain string template parsed without HTML structure
	String bool
	// Unminified skips the minifier for this view
	Unminified bool
	// File is the path the source was read from, if any
	File string
}

// View is a named template source that other templates can reference
type View struct {
	Views      *Views
	Name       string
	Source     string
	At         string
	IsString   bool
	Unminified bool
	File       string

	// AttributesMap holds declared attribute names (tag matches become attributes)
	AttributesMap map[string]bool
	// ArraysMap maps array sub-element tags to the attribute collecting them
	ArraysMap map[string]string
	// ElementNames lists the custom tags mapped to this view
	ElementNames []string
}

// NewView creates a new View. It does not register the view.
func NewView(views *Views, name, source string, opts *ViewOptions) *View {
	if opts == nil {
		opts = &ViewOptions{}
	}
	view := &View{
		Views:      views,
		Name:       name,
		Source:     source,
		At:         namespaceOf(name),
		IsString:   opts.String,
		Unminified: opts.Unminified,
		File:       opts.File,
	}
	if names := util.SplitWords(opts.Attributes); len(names) > 0 {
		view.AttributesMap = make(map[string]bool, len(names))
		for _, attr := range names {
			view.AttributesMap[attr] = true
		}
	}
	if arrays := util.SplitWords(opts.Arrays); len(arrays) > 0 {
		view.ArraysMap = make(map[string]string, len(arrays))
		for _, decl := range arrays {
			tag, attr, found := strings.Cut(decl, "/")
			if !found || attr == "" {
				attr = tag
			}
			view.ArraysMap[tag] = attr
		}
	}
	view.ElementNames = util.SplitWords(opts.Element)
	return view
}

// IsAttribute reports whether name is a declared attribute of the view
func (v *View) IsAttribute(name string) bool {
	return v.AttributesMap[name]
}

// ArrayAttribute returns the attribute collecting <tag> array entries
func (v *View) ArrayAttribute(tag string) (string, bool) {
	attr, ok := v.ArraysMap[tag]
	return attr, ok
}

func namespaceOf(name string) string {
	i := strings.LastIndex(name, ":")
	if i == -1 {
		return ""
	}
	return name[:i]
}

// Views is a registry of views. It is safe for concurrent use.
type Views struct {
	mu         sync.RWMutex
	nameMap    map[string]*View
	elementMap map[string]*View
	order      []*View
}

// NewViews creates a new, empty registry
func NewViews() *Views {
	return &Views{
		nameMap:    make(map[string]*View),
		elementMap: make(map[string]*View),
	}
}

// Register creates a view and adds it to the registry, replacing any view
// with the same name. A name ending in `:index` is also registered under
// its namespace.
func (vs *Views) Register(name, source string, opts *ViewOptions) *View {
	view := NewView(vs, name, source, opts)

	vs.mu.Lock()
	defer vs.mu.Unlock()
	if previous, ok := vs.nameMap[name]; ok {
		for i, v := range vs.order {
			if v == previous {
				vs.order = append(vs.order[:i], vs.order[i+1:]...)
				break
			}
		}
	}
	vs.nameMap[name] = view
	if strings.HasSuffix(name, ":index") {
		vs.nameMap[strings.TrimSuffix(name, ":index")] = view
	}
	for _, tag := range view.ElementNames {
		vs.elementMap[tag] = view
	}
	vs.order = append(vs.order, view)
	return view
}

// Find resolves name relative to namespace. It tries the exact name within
// the namespace first, then walks up the namespace's segments. It returns
// nil when no view matches.
func (vs *Views) Find(name, namespace string) *View {
	vs.mu.RLock()
	defer vs.mu.RUnlock()

	exactName := name
	if namespace != "" {
		exactName = namespace + ":" + name
	}
	if match, ok := vs.nameMap[exactName]; ok {
		return match
	}

	segments := strings.Split(name, ":")
	depth := len(segments)
	if namespace != "" {
		segments = append(strings.Split(namespace, ":"), segments...)
	}
	// Keep the last `depth` segments and drop namespace segments from the
	// innermost outwards. Decrease depth when nothing matched and retry.
	for ; depth > 0; depth-- {
		test := append([]string(nil), segments...)
		for len(test) > depth {
			i := len(test) - 1 - depth
			test = append(test[:i], test[i+1:]...)
			if match, ok := vs.nameMap[strings.Join(test, ":")]; ok {
				return match
			}
		}
	}
	return nil
}

// ElementView returns the view mapped to a custom element tag
func (vs *Views) ElementView(tagName string) *View {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	return vs.elementMap[tagName]
}

// All returns the registered views in registration order
func (vs *Views) All() []*View {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	return append([]*View(nil), vs.order...)
}

// TemplateParser parses a view's source into a template
type TemplateParser interface {
	ParseView(view *View) (*Template, error)
}

// Parse parses the view with p. Results are not cached.
func (v *View) Parse(p TemplateParser) (*Template, error) {
	return p.ParseView(v)
}
