// Package source defines the capabilities rootbrowse needs from a ROOT file
// reader. Objects are opaque; their concrete kind is discovered through the
// interfaces they satisfy.
package source

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotFound is returned by Container.Get when no key matches an identifier.
var ErrNotFound = errors.New("object not found")

// Object is anything stored in a ROOT file. Class reports the ROOT class name
// (TH1F, TTree, TObjString...).
type Object interface {
	Class() string
}

// Named is an Object with a display name.
type Named interface {
	Object
	Name() string
}

// Container is an Object with enumerable children.
type Container interface {
	Object
	// Keys lists child identifiers, each possibly carrying a ";<cycle>" suffix.
	Keys() ([]string, error)
	// Get resolves an identifier. Without a cycle suffix the highest cycle wins.
	Get(id string) (Object, error)
}

// Directory is the file itself or a TDirectory inside it.
type Directory interface {
	Container
	// FilePath is the absolute path of the file on disk.
	FilePath() string
	// SubPath is the slash separated location inside the file, empty for the
	// top directory.
	SubPath() string
}

// Tree is a TTree. Its keys are branch names.
type Tree interface {
	Container
	Name() string
	Entries() int64
}

// Branch is a TBranch.
type Branch interface {
	Named
	TypeName() string
	// Jagged reports a variable number of values per entry.
	Jagged() bool
}

// Histogram is any binned histogram.
type Histogram interface {
	Named
	// Kind is "COUNT" for plain counting histograms and "MEAN" for profiles.
	Kind() string
	// Axes returns the number of bins of each axis.
	Axes() []int
}

// Histogram kinds.
const (
	KindCount = "COUNT"
	KindMean  = "MEAN"
)

// SplitCycle splits "name;3" into ("name", 3, true). Keys without a numeric
// cycle suffix are returned unchanged with ok false.
func SplitCycle(key string) (name string, cycle int, ok bool) {
	i := strings.LastIndexByte(key, ';')
	if i < 0 || i == len(key)-1 {
		return key, 0, false
	}
	n, err := strconv.Atoi(key[i+1:])
	if err != nil || n < 0 || strings.ContainsAny(key[i+1:], "+-") {
		return key, 0, false
	}
	return key[:i], n, true
}

// StripCycle removes a trailing ";<integer>" version suffix.
func StripCycle(key string) string {
	name, _, _ := SplitCycle(key)
	return name
}
