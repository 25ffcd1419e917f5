package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/openclimatedata/datapackage"
	"github.com/openclimatedata/datapackage/internal/config"
	"github.com/openclimatedata/datapackage/internal/logging"
)

const configFileHint = config.ConfigFileName

// settings are the effective options of a command: flags beat the
// environment, which beats the config file.
type settings struct {
	cfg    *config.Config
	logger *logging.ConsoleLogger
}

func loadSettings(cmd *cobra.Command) (*settings, error) {

	config.LoadEnv()

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if cmd.Flags().Changed("branch") {
		cfg.DefaultBranch, _ = cmd.Flags().GetString("branch")
	}
	if cmd.Flags().Changed("timeout") {
		d, _ := cmd.Flags().GetDuration("timeout")
		cfg.Timeout = d.String()
	}

	return &settings{
		cfg:    cfg,
		logger: logging.NewWriterLogger(cmd.ErrOrStderr(), verbose),
	}, nil
}

// loadConfig reads --config, or dpread.yaml in the working directory
// if it exists.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {

	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(".")
		if errors.Is(err, config.ErrConfigNotFound) {
			return &config.Config{}, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// reader returns a datapackage.Reader configured from the settings.
func (s *settings) reader() (*datapackage.Reader, error) {

	timeout, err := s.cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	r := datapackage.NewReader()
	if s.cfg.DefaultBranch != "" {
		r.DefaultBranch = s.cfg.DefaultBranch
	}
	r.HTTPClient = &http.Client{Timeout: timeout}
	r.UserAgent = s.cfg.UserAgent
	r.Logger = s.logger

	return r, nil
}

// resourceNames returns the --resource flag values, or the resources
// named in the config file.
func (s *settings) resourceNames(cmd *cobra.Command) []string {
	names, _ := cmd.Flags().GetStringSlice("resource")
	if len(names) == 0 {
		return s.cfg.Resources
	}
	return names
}

// tables returns the tables of a result in manifest order.
func tables(res *datapackage.Result) []*datapackage.Table {
	out := make([]*datapackage.Table, 0, res.Len())
	for _, name := range res.Names {
		if t, ok := res.Get(name); ok {
			out = append(out, t)
		}
	}
	return out
}
