package label

import (
	"reflect"

	"github.com/mattsolo1/grove-rootbrowse/pkg/source"
)

// Handler labels one object.
type Handler func(obj source.Object) Label

type ifaceHandler struct {
	iface   reflect.Type
	handler Handler
}

// Registry selects a Handler by the runtime type of an object. Handlers
// registered for a concrete type take precedence over handlers registered for
// an interface. Among matching interfaces the most specific one wins, and
// registration order breaks ties. Objects matching nothing go to the fallback.
type Registry struct {
	exact    map[reflect.Type]Handler
	ifaces   []ifaceHandler
	fallback Handler
}

// NewRegistry returns an empty registry using fallback for unknown kinds.
func NewRegistry(fallback Handler) *Registry {
	return &Registry{
		exact:    make(map[reflect.Type]Handler),
		fallback: fallback,
	}
}

// Register adds fn as the handler for T, which may be a concrete type or an
// interface. Registering the same T twice replaces the earlier handler.
func Register[T source.Object](r *Registry, fn func(T) Label) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	h := func(obj source.Object) Label { return fn(obj.(T)) }

	if t.Kind() != reflect.Interface {
		r.exact[t] = h
		return
	}
	for i := range r.ifaces {
		if r.ifaces[i].iface == t {
			r.ifaces[i].handler = h
			return
		}
	}
	r.ifaces = append(r.ifaces, ifaceHandler{iface: t, handler: h})
}

// Lookup returns the handler that Classify would run for obj.
func (r *Registry) Lookup(obj source.Object) Handler {
	if isNil(obj) {
		return r.fallback
	}
	t := reflect.TypeOf(obj)
	if h, ok := r.exact[t]; ok {
		return h
	}
	var best *ifaceHandler
	for i := range r.ifaces {
		ih := &r.ifaces[i]
		if !t.Implements(ih.iface) {
			continue
		}
		if best == nil || narrower(ih.iface, best.iface) {
			best = ih
		}
	}
	if best == nil {
		return r.fallback
	}
	return best.handler
}

// narrower reports whether a is strictly more specific than b.
func narrower(a, b reflect.Type) bool {
	return a.Implements(b) && !b.Implements(a)
}

// Classify labels obj with exactly one handler.
func (r *Registry) Classify(obj source.Object) Label {
	return r.Lookup(obj)(obj)
}

func isNil(obj source.Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
