// Package tree walks the hierarchy of a ROOT file and builds a labeled tree
// from it.
package tree

import (
	"github.com/mattsolo1/grove-rootbrowse/pkg/label"
	"github.com/mattsolo1/grove-rootbrowse/pkg/source"
)

// Classifier produces the label of one object.
type Classifier interface {
	Classify(obj source.Object) label.Label
}

// Node is one entry of a built tree.
type Node struct {
	Path     string      `json:"path" yaml:"path"`
	Name     string      `json:"name" yaml:"name"`
	Class    string      `json:"class" yaml:"class"`
	Label    label.Label `json:"label" yaml:"label"`
	Children []*Node     `json:"children,omitempty" yaml:"children,omitempty"`
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 1
	for _, c := range n.Children {
		count += c.Count()
	}
	return count
}

// Options controls Build.
type Options struct {
	// MaxDepth limits how many levels below the root are visited. Zero means
	// no limit.
	MaxDepth int
}

// frame is a pending item on the build stack.
type frame struct {
	item   *Item
	parent *Node
	depth  int
}

// Build walks root depth first, in pre-order, and returns the labeled tree.
// Children are attached in the order Item.Children returns them. The walk
// uses an explicit stack so deep hierarchies do not grow the call stack.
// Any error aborts the walk; no partial tree is returned.
func Build(root *Item, c Classifier, opts Options) (*Node, error) {
	var out *Node
	stack := []frame{{item: root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := newNode(f.item, c)
		if f.parent == nil {
			out = node
		} else {
			f.parent.Children = append(f.parent.Children, node)
		}

		if opts.MaxDepth > 0 && f.depth >= opts.MaxDepth {
			continue
		}
		children, err := f.item.Children()
		if err != nil {
			return nil, err
		}
		// Push in reverse so the first child is visited next.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{item: children[i], parent: node, depth: f.depth + 1})
		}
	}
	return out, nil
}

func newNode(it *Item, c Classifier) *Node {
	return &Node{
		Path:  it.Path,
		Name:  label.NameOf(it.Object),
		Class: label.ClassName(it.Object),
		Label: c.Classify(it.Object),
	}
}
