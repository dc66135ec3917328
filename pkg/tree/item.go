package tree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattsolo1/grove-rootbrowse/pkg/source"
)

// RootPath is the path of the top item of a file.
const RootPath = "/"

// Item represents a single object of a ROOT file together with its logical
// path. Paths are slash separated and only used for display.
type Item struct {
	Path   string
	Object source.Object
}

// NewRoot wraps the top directory of a file.
func NewRoot(obj source.Object) *Item {
	return &Item{Path: RootPath, Object: obj}
}

// IsDir reports whether the item has enumerable children. Only directories
// and trees do.
func (it *Item) IsDir() bool {
	switch it.Object.(type) {
	case source.Directory, source.Tree:
		return true
	}
	return false
}

// Children lists the item's children sorted by identifier, with version
// suffixes stripped and duplicates collapsed. It queries the reader on every
// call. Leaves have no children.
func (it *Item) Children() ([]*Item, error) {
	if !it.IsDir() {
		return nil, nil
	}
	c := it.Object.(source.Container)

	keys, err := c.Keys()
	if err != nil {
		return nil, fmt.Errorf("list keys of %s: %w", it.Path, err)
	}

	seen := make(map[string]struct{}, len(keys))
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		id := source.StripCycle(k)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	children := make([]*Item, 0, len(ids))
	for _, id := range ids {
		obj, err := c.Get(id)
		if err != nil {
			return nil, fmt.Errorf("look up %s in %s: %w", id, it.Path, err)
		}
		children = append(children, &Item{Path: JoinPath(it.Path, id), Object: obj})
	}
	return children, nil
}

// JoinPath appends a child identifier to a parent path with a single
// separator.
func JoinPath(parent, id string) string {
	return strings.TrimSuffix(parent, "/") + "/" + id
}
