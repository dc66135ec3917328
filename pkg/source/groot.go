package source

import (
	"fmt"
	"path"
	"path/filepath"
	"reflect"
	"strings"

	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/root"
	"go-hep.org/x/hep/groot/rtree"
)

// File is an open ROOT file, read with go-hep's groot. It is the top
// Directory of the hierarchy.
type File struct {
	rootDir
	f *riofs.File
}

// Open opens a ROOT file for reading.
func Open(name string) (*File, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	f, err := riofs.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return &File{rootDir: rootDir{dir: f, file: abs}, f: f}, nil
}

// Close releases the underlying file handle.
func (f *File) Close() error {
	return f.f.Close()
}

// wrap adapts groot objects to the kind interfaces. Anything else is returned
// as is: every root.Object already satisfies Object.
func wrap(obj root.Object, file, sub string) Object {
	switch o := obj.(type) {
	case riofs.Directory:
		return &rootDir{dir: o, file: file, sub: sub}
	case rtree.Tree:
		return &rootTree{t: o}
	case rhist.H2:
		return &rootHist{Named: o, axes: []int{o.NbinsX(), o.NbinsY()}}
	case rhist.H1:
		return &rootHist{Named: o, axes: []int{o.NbinsX()}}
	}
	return obj
}

type rootDir struct {
	dir  riofs.Directory
	file string
	sub  string
}

func (d *rootDir) Class() string {
	if d.sub == "" {
		return "TFile"
	}
	return "TDirectoryFile"
}

func (d *rootDir) Name() string {
	if d.sub == "" {
		return filepath.Base(d.file)
	}
	return path.Base(d.sub)
}

func (d *rootDir) FilePath() string { return d.file }
func (d *rootDir) SubPath() string  { return d.sub }

func (d *rootDir) Keys() ([]string, error) {
	keys := d.dir.Keys()
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, fmt.Sprintf("%s;%d", k.Name(), int(k.Cycle())))
	}
	return ids, nil
}

func (d *rootDir) Get(id string) (Object, error) {
	name, cycle, ok := SplitCycle(id)
	if !ok {
		cycle = -1
		for _, k := range d.dir.Keys() {
			if c := int(k.Cycle()); k.Name() == name && c > cycle {
				cycle = c
			}
		}
		if cycle < 0 {
			return nil, fmt.Errorf("get %s from %s: %w", id, d.Name(), ErrNotFound)
		}
	}
	obj, err := d.dir.Get(fmt.Sprintf("%s;%d", name, cycle))
	if err != nil {
		return nil, fmt.Errorf("get %s from %s: %w", id, d.Name(), err)
	}
	return wrap(obj, d.file, path.Join(d.sub, name)), nil
}

type rootTree struct {
	t rtree.Tree
}

func (t *rootTree) Class() string  { return t.t.Class() }
func (t *rootTree) Name() string   { return t.t.Name() }
func (t *rootTree) Entries() int64 { return t.t.Entries() }

// Keys lists every branch, nested ones as "parent/child".
func (t *rootTree) Keys() ([]string, error) {
	var keys []string
	var walk func(prefix string, branches []rtree.Branch)
	walk = func(prefix string, branches []rtree.Branch) {
		for _, b := range branches {
			name := prefix + b.Name()
			keys = append(keys, name)
			walk(name+"/", b.Branches())
		}
	}
	walk("", t.t.Branches())
	return keys, nil
}

func (t *rootTree) Get(id string) (Object, error) {
	branches := t.t.Branches()
	var found rtree.Branch
	for _, part := range strings.Split(StripCycle(id), "/") {
		found = nil
		for _, b := range branches {
			if b.Name() == part {
				found = b
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("get %s from tree %s: %w", id, t.t.Name(), ErrNotFound)
		}
		branches = found.Branches()
	}
	return &rootBranch{b: found}, nil
}

type rootBranch struct {
	b rtree.Branch
}

func (b *rootBranch) Class() string { return b.b.Class() }
func (b *rootBranch) Name() string  { return b.b.Name() }

// Jagged reports whether entries of b have a varying length: arrays sized by a
// count leaf, and std::vector elements.
func (b *rootBranch) Jagged() bool {
	for _, leaf := range b.b.Leaves() {
		if leaf.LeafCount() != nil || isVector(leaf) {
			return true
		}
	}
	return false
}

// TypeName returns the declared C++ type of b, such as "float", "int32_t[]"
// or "std::vector<double>". Branches with several leaves list them as a tuple.
func (b *rootBranch) TypeName() string {
	leaves := b.b.Leaves()
	if len(leaves) == 0 {
		return b.b.Class()
	}
	names := make([]string, len(leaves))
	for i, leaf := range leaves {
		names[i] = leafTypeName(leaf)
	}
	if len(names) == 1 {
		return names[0]
	}
	return "(" + strings.Join(names, ", ") + ")"
}

func leafTypeName(leaf rtree.Leaf) string {
	if leaf.Class() == "TLeafElement" {
		return elementTypeName(leaf.TypeName())
	}
	name, ok := cppType(leaf.Class(), leafKind(leaf))
	if !ok {
		name = leaf.TypeName()
	}
	switch {
	case leaf.LeafCount() != nil:
		name += "[]"
	case leaf.Len() > 1 && leaf.Class() != "TLeafC":
		name += fmt.Sprintf("[%d]", leaf.Len())
	}
	return name
}

func leafKind(leaf rtree.Leaf) reflect.Kind {
	if t := leaf.Type(); t != nil {
		for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			t = t.Elem()
		}
		return t.Kind()
	}
	return leaf.Kind()
}

var leafTypes = map[string]string{
	"TLeafO":   "bool",
	"TLeafB":   "int8_t",
	"TLeafS":   "int16_t",
	"TLeafI":   "int32_t",
	"TLeafL":   "int64_t",
	"TLeafG":   "int64_t",
	"TLeafF":   "float",
	"TLeafD":   "double",
	"TLeafF16": "Float16_t",
	"TLeafD32": "Double32_t",
	"TLeafC":   "char*",
}

// cppType maps a basic leaf class to its C++ type name. kind selects the
// unsigned variant of integer leaves.
func cppType(class string, kind reflect.Kind) (string, bool) {
	name, ok := leafTypes[class]
	if !ok {
		return "", false
	}
	switch kind {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if strings.HasPrefix(name, "int") {
			name = "u" + name
		}
	}
	return name, true
}

// elementTypeName normalizes the streamer type of a TLeafElement to its
// C++ spelling.
func elementTypeName(name string) string {
	if strings.HasPrefix(name, "vector<") {
		return "std::" + name
	}
	return name
}

func isVector(leaf rtree.Leaf) bool {
	if leaf.Class() != "TLeafElement" {
		return false
	}
	if strings.Contains(leaf.TypeName(), "vector<") {
		return true
	}
	t := leaf.Type()
	return t != nil && t.Kind() == reflect.Slice
}

// rootHist covers every groot histogram; groot has no profiles so the kind is
// always COUNT.
type rootHist struct {
	root.Named
	axes []int
}

func (h *rootHist) Kind() string { return KindCount }
func (h *rootHist) Axes() []int  { return h.axes }
