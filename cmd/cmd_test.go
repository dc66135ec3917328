package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-rootbrowse/pkg/history"
	"github.com/mattsolo1/grove-rootbrowse/pkg/label"
	"github.com/mattsolo1/grove-rootbrowse/pkg/service"
	"github.com/mattsolo1/grove-rootbrowse/pkg/source/sourcetest"
	"github.com/mattsolo1/grove-rootbrowse/pkg/tree"
)

type memFile struct{ *sourcetest.Directory }

func (memFile) Close() error { return nil }

func newTestService(t *testing.T, dir *sourcetest.Directory, openErr error) *service.Service {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &service.Config{
		DataDir:        filepath.Join(t.TempDir(), "data"),
		HistoryEnabled: true,
		HistoryLimit:   20,
		Links:          true,
		Format:         "text",
		Icons:          label.DefaultIcons(),
		Styles:         label.DefaultStyles(),
	}
	return service.New(cfg, logger, service.WithOpener(func(string) (service.File, error) {
		if openErr != nil {
			return nil, openErr
		}
		return memFile{dir}, nil
	}))
}

func testDir() *sourcetest.Directory {
	return &sourcetest.Directory{
		File: "/data/run.root",
		Entries: []sourcetest.Entry{
			{Key: "Events;1", Object: &sourcetest.Tree{
				TreeName: "Events", N: 42,
				Branches: []sourcetest.Entry{{Key: "nJet", Object: &sourcetest.Branch{BranchName: "nJet", Type: "int32_t"}}},
			}},
		},
	}
}

func run(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(io.Discard)
	if args == nil {
		args = []string{}
	}
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestTreeCommandText(t *testing.T) {
	svc := newTestService(t, testDir(), nil)

	out, err := run(t, NewTreeCmd(&svc), "run.root")
	require.NoError(t, err)
	assert.Contains(t, out, "📁 run.root")
	assert.Contains(t, out, "🌴 Events (42)")
	assert.Contains(t, out, "🍁 nJet int32_t")
	assert.Less(t, strings.Index(out, "Events"), strings.Index(out, "nJet"))
}

func TestTreeCommandJSONWithDepth(t *testing.T) {
	svc := newTestService(t, testDir(), nil)

	out, err := run(t, NewTreeCmd(&svc), "run.root", "--format", "json", "--depth", "1")
	require.NoError(t, err)

	var root tree.Node
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	require.Len(t, root.Children, 1)
	assert.Equal(t, "/Events", root.Children[0].Path)
	assert.Empty(t, root.Children[0].Children)
}

func TestTreeCommandErrors(t *testing.T) {
	boom := errors.New("not a ROOT file")
	svc := newTestService(t, nil, boom)

	_, err := run(t, NewTreeCmd(&svc), "junk.txt")
	assert.ErrorIs(t, err, boom)

	svc = newTestService(t, testDir(), nil)
	_, err = run(t, NewTreeCmd(&svc), "run.root", "--format", "xml")
	assert.Error(t, err)

	_, err = run(t, NewTreeCmd(&svc))
	assert.Error(t, err, "file argument is required")
}

func TestHistoryCommand(t *testing.T) {
	svc := newTestService(t, testDir(), nil)

	out, err := run(t, NewHistoryCmd(&svc))
	require.NoError(t, err)
	assert.Contains(t, out, "No files browsed yet")

	_, err = run(t, NewTreeCmd(&svc), "run.root")
	require.NoError(t, err)

	out, err = run(t, NewHistoryCmd(&svc))
	require.NoError(t, err)
	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "/data/run.root")

	out, err = run(t, NewHistoryCmd(&svc), "--json")
	require.NoError(t, err)
	var entries []history.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Nodes)

	_, err = run(t, NewHistoryCmd(&svc), "--clear")
	require.NoError(t, err)
	out, err = run(t, NewHistoryCmd(&svc))
	require.NoError(t, err)
	assert.Contains(t, out, "No files browsed yet")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, NewVersionCmd(), "--json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
