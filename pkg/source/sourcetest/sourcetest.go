// Package sourcetest provides in-memory implementations of the source
// interfaces for tests.
package sourcetest

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/mattsolo1/grove-rootbrowse/pkg/source"
)

// Entry is one key of an in-memory container. Key may carry a ";<cycle>"
// suffix.
type Entry struct {
	Key    string
	Object source.Object
}

// entries implements Keys and Get over a slice kept in insertion order.
type entries []Entry

func (es entries) Keys() ([]string, error) {
	keys := make([]string, len(es))
	for i, e := range es {
		keys[i] = e.Key
	}
	return keys, nil
}

func (es entries) Get(id string) (source.Object, error) {
	for _, e := range es {
		if e.Key == id {
			return e.Object, nil
		}
	}
	var (
		best  source.Object
		found bool
		cycle = -1
	)
	for _, e := range es {
		name, c, _ := source.SplitCycle(e.Key)
		if name == id && c > cycle {
			best, cycle, found = e.Object, c, true
		}
	}
	if !found {
		return nil, fmt.Errorf("get %s: %w", id, source.ErrNotFound)
	}
	return best, nil
}

// Directory is an in-memory TFile (Sub == "") or TDirectory.
type Directory struct {
	File    string
	Sub     string
	Entries []Entry
	// KeysErr and GetErr, when set, are returned by Keys and Get.
	KeysErr error
	GetErr  error
}

func (d *Directory) Class() string {
	if d.Sub == "" {
		return "TFile"
	}
	return "TDirectoryFile"
}

func (d *Directory) Name() string {
	if d.Sub == "" {
		return filepath.Base(d.File)
	}
	return path.Base(d.Sub)
}

func (d *Directory) FilePath() string { return d.File }
func (d *Directory) SubPath() string  { return d.Sub }

func (d *Directory) Keys() ([]string, error) {
	if d.KeysErr != nil {
		return nil, d.KeysErr
	}
	return entries(d.Entries).Keys()
}

func (d *Directory) Get(id string) (source.Object, error) {
	if d.GetErr != nil {
		return nil, d.GetErr
	}
	return entries(d.Entries).Get(id)
}

// Tree is an in-memory TTree.
type Tree struct {
	TreeName string
	N        int64
	Branches []Entry
}

func (t *Tree) Class() string  { return "TTree" }
func (t *Tree) Name() string   { return t.TreeName }
func (t *Tree) Entries() int64 { return t.N }

func (t *Tree) Keys() ([]string, error) { return entries(t.Branches).Keys() }

func (t *Tree) Get(id string) (source.Object, error) { return entries(t.Branches).Get(id) }

// Branch is an in-memory TBranch.
type Branch struct {
	BranchName string
	Type       string
	IsJagged   bool
}

func (b *Branch) Class() string    { return "TBranch" }
func (b *Branch) Name() string     { return b.BranchName }
func (b *Branch) TypeName() string { return b.Type }
func (b *Branch) Jagged() bool     { return b.IsJagged }

// Histogram is an in-memory histogram.
type Histogram struct {
	HistName  string
	ClassName string
	HistKind  string
	Bins      []int
}

func (h *Histogram) Class() string { return h.ClassName }
func (h *Histogram) Name() string  { return h.HistName }
func (h *Histogram) Kind() string  { return h.HistKind }
func (h *Histogram) Axes() []int   { return h.Bins }

// Object is an object of a kind rootbrowse does not know about.
type Object struct {
	ClassName string
}

func (o *Object) Class() string { return o.ClassName }

// NamedObject is an unknown kind that carries a name.
type NamedObject struct {
	ClassName  string
	ObjectName string
}

func (o *NamedObject) Class() string { return o.ClassName }
func (o *NamedObject) Name() string  { return o.ObjectName }

var (
	_ source.Directory = (*Directory)(nil)
	_ source.Tree      = (*Tree)(nil)
	_ source.Branch    = (*Branch)(nil)
	_ source.Histogram = (*Histogram)(nil)
	_ source.Named     = (*NamedObject)(nil)
)
