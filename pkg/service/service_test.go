package service

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-rootbrowse/pkg/history"
	"github.com/mattsolo1/grove-rootbrowse/pkg/label"
	"github.com/mattsolo1/grove-rootbrowse/pkg/source"
	"github.com/mattsolo1/grove-rootbrowse/pkg/source/sourcetest"
)

type memFile struct {
	*sourcetest.Directory
	closed bool
}

func (f *memFile) Close() error {
	f.closed = true
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig(t *testing.T) *Config {
	return &Config{
		DataDir:        filepath.Join(t.TempDir(), "data"),
		HistoryEnabled: true,
		Format:         "text",
		Icons:          label.DefaultIcons(),
		Styles:         label.DefaultStyles(),
	}
}

func TestTreeBuildsAndRecordsHistory(t *testing.T) {
	f := &memFile{Directory: &sourcetest.Directory{
		File: "/data/run.root",
		Entries: []sourcetest.Entry{
			{Key: "h;1", Object: &sourcetest.Histogram{HistName: "h", ClassName: "TH1D", HistKind: source.KindCount, Bins: []int{3}}},
		},
	}}
	s := New(testConfig(t), quietLogger(), WithOpener(func(path string) (File, error) {
		assert.Equal(t, "run.root", path)
		return f, nil
	}))

	root, err := s.Tree("run.root", 0)
	require.NoError(t, err)
	assert.Equal(t, "📁 run.root", root.Label.Plain())
	require.Len(t, root.Children, 1)
	assert.True(t, f.closed)

	store, err := s.OpenHistory()
	require.NoError(t, err)
	defer store.Close()
	e, err := store.Get("/data/run.root")
	require.NoError(t, err)
	assert.Equal(t, 2, e.Nodes)
}

func TestTreeWithDepthSkipsHistory(t *testing.T) {
	f := &memFile{Directory: &sourcetest.Directory{
		File: "/data/deep.root",
		Entries: []sourcetest.Entry{
			{Key: "sub;1", Object: &sourcetest.Directory{
				File: "/data/deep.root", Sub: "sub",
				Entries: []sourcetest.Entry{{Key: "x;1", Object: &sourcetest.Object{ClassName: "TObjString"}}},
			}},
		},
	}}
	s := New(testConfig(t), quietLogger(), WithOpener(func(string) (File, error) { return f, nil }))

	root, err := s.Tree("deep.root", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, root.Count())

	store, err := s.OpenHistory()
	require.NoError(t, err)
	defer store.Close()
	_, err = store.Get("/data/deep.root")
	assert.ErrorIs(t, err, history.ErrNotFound)
}

func TestTreeOpenError(t *testing.T) {
	boom := errors.New("not a ROOT file")
	s := New(testConfig(t), quietLogger(), WithOpener(func(string) (File, error) {
		return nil, boom
	}))

	root, err := s.Tree("junk.txt", 0)
	assert.Nil(t, root)
	assert.ErrorIs(t, err, boom)
}

func TestTreeReadErrorClosesFileAndSkipsHistory(t *testing.T) {
	boom := errors.New("truncated")
	f := &memFile{Directory: &sourcetest.Directory{File: "/data/bad.root", KeysErr: boom}}
	cfg := testConfig(t)
	s := New(cfg, quietLogger(), WithOpener(func(string) (File, error) { return f, nil }))

	_, err := s.Tree("bad.root", 0)
	assert.ErrorIs(t, err, boom)
	assert.True(t, f.closed)

	store, err := s.OpenHistory()
	require.NoError(t, err)
	defer store.Close()
	entries, err := store.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTreeUsesConfiguredIcons(t *testing.T) {
	cfg := testConfig(t)
	cfg.HistoryEnabled = false
	cfg.Icons.Directory = "D"
	f := &memFile{Directory: &sourcetest.Directory{File: "/data/run.root"}}
	s := New(cfg, quietLogger(), WithOpener(func(string) (File, error) { return f, nil }))

	root, err := s.Tree("run.root", 0)
	require.NoError(t, err)
	assert.Equal(t, "D run.root", root.Label.Plain())
}
