package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-rootbrowse/pkg/history"
	"github.com/mattsolo1/grove-rootbrowse/pkg/label"
	"github.com/mattsolo1/grove-rootbrowse/pkg/source"
	"github.com/mattsolo1/grove-rootbrowse/pkg/tree"
)

// File is an open ROOT file.
type File interface {
	source.Directory
	Close() error
}

// Opener opens the file at path.
type Opener func(path string) (File, error)

// OpenROOT opens a file with the groot reader.
func OpenROOT(path string) (File, error) {
	f, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Service is the core browse service
type Service struct {
	Config *Config
	Labels *label.Registry
	Logger *logrus.Logger
	open   Opener
}

// Config holds service configuration
type Config struct {
	DataDir        string
	HistoryEnabled bool
	HistoryLimit   int
	Links          bool
	Format         string
	Icons          label.Icons
	Styles         label.Styles
}

// Option customizes a Service.
type Option func(*Service)

// WithOpener replaces the groot reader, mainly for tests.
func WithOpener(open Opener) Option {
	return func(s *Service) { s.open = open }
}

// New creates a new browse service
func New(config *Config, logger *logrus.Logger, options ...Option) *Service {
	s := &Service{
		Config: config,
		Labels: label.New(config.Icons, config.Styles),
		Logger: logger,
		open:   OpenROOT,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Tree opens path, builds its labeled tree and closes the file again. The
// whole tree is built before it is returned, so a read error never leaves
// partial output behind.
func (s *Service) Tree(path string, maxDepth int) (*tree.Node, error) {
	log := s.Logger.WithField("file", path)

	f, err := s.open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("close file")
		}
	}()

	root, err := tree.Build(tree.NewRoot(f), s.Labels, tree.Options{MaxDepth: maxDepth})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	log.WithField("nodes", root.Count()).Debug("built tree")

	switch {
	case !s.Config.HistoryEnabled:
	case maxDepth > 0:
		log.WithField("depth", maxDepth).Debug("depth-limited tree, not recorded in history")
	default:
		if err := s.record(f.FilePath(), root.Count()); err != nil {
			log.WithError(err).Warn("failed to record history")
		}
	}
	return root, nil
}

func (s *Service) record(path string, nodes int) error {
	store, err := s.OpenHistory()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(path, nodes)
}

// OpenHistory opens the history store in the data directory.
func (s *Service) OpenHistory() (*history.Store, error) {
	return history.NewStore(s.Config.DataDir)
}
