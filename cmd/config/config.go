package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-rootbrowse/pkg/label"
	"github.com/mattsolo1/grove-rootbrowse/pkg/render"
	"github.com/mattsolo1/grove-rootbrowse/pkg/style"
)

var cfgFile string

// Config is the resolved configuration of one invocation.
type Config struct {
	DataDir string       `mapstructure:"data_dir"`
	History History      `mapstructure:"history"`
	Output  Output       `mapstructure:"output"`
	Icons   label.Icons  `mapstructure:"icons"`
	Styles  label.Styles `mapstructure:"styles"`
}

// History configures the browsed-file history.
type History struct {
	Enabled bool `mapstructure:"enabled"`
	Limit   int  `mapstructure:"limit"`
}

// Output configures rendering.
type Output struct {
	Links  bool   `mapstructure:"links"`
	Format string `mapstructure:"format"`
}

// InitConfig points viper at the config file and environment.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "rootbrowse")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("ROOTBROWSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults(viper.GetViper())
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	v.SetDefault("data_dir", filepath.Join(home, ".local", "share", "rootbrowse"))
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.limit", 20)
	v.SetDefault("output.links", true)
	v.SetDefault("output.format", string(render.FormatText))

	icons := label.DefaultIcons()
	v.SetDefault("icons.unknown", icons.Unknown)
	v.SetDefault("icons.directory", icons.Directory)
	v.SetDefault("icons.tree", icons.Tree)
	v.SetDefault("icons.jagged_branch", icons.JaggedBranch)
	v.SetDefault("icons.branch", icons.Branch)
	v.SetDefault("icons.count_histogram", icons.CountHistogram)
	v.SetDefault("icons.histogram", icons.Histogram)

	styles := label.DefaultStyles()
	v.SetDefault("styles.name", styles.Name)
	v.SetDefault("styles.class", styles.Class)
	v.SetDefault("styles.directory_guide", styles.DirectoryGuide)
	v.SetDefault("styles.tree_guide", styles.TreeGuide)
}

// Load reads the config file, if any, and returns the resolved Config.
// A missing config file is not an error.
func Load() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return Decode(viper.GetViper())
}

// Decode unmarshals and validates the configuration held by v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks styles and the output format.
func (c *Config) Validate() error {
	if _, err := render.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	for key, desc := range map[string]string{
		"styles.name":            c.Styles.Name,
		"styles.class":           c.Styles.Class,
		"styles.directory_guide": c.Styles.DirectoryGuide,
		"styles.tree_guide":      c.Styles.TreeGuide,
	} {
		if err := style.Validate(desc); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// Used returns the config file in use, if any.
func Used() string {
	return viper.ConfigFileUsed()
}

// AddGlobalFlags registers the --config flag.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/rootbrowse/config.yaml)")
}
