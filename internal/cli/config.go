package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/alnah/go-audiopipe/internal/config"
	"github.com/alnah/go-audiopipe/internal/extract"
)

// validConfigKeys lists all supported configuration keys.
var validConfigKeys = []string{
	config.KeyOutputDir,
	config.KeyFormat,
	config.KeyBitrate,
}

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/audiopipe/config.
Settings can also be overridden via environment variables.

Supported settings:
  output-dir    Default directory for output files (env: AUDIOPIPE_OUTPUT_DIR)
  format        Default target format (env: AUDIOPIPE_FORMAT)
  bitrate       Default re-encode bitrate (env: AUDIOPIPE_BITRATE)`,
		Example: `  audiopipe config set output-dir ~/Music/extracted
  audiopipe config set format ogg
  audiopipe config get bitrate
  audiopipe config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

Supported keys: output-dir, format, bitrate.
The output directory will be created if it doesn't exist.`,
		Example: `  audiopipe config set output-dir ~/Music/extracted
  audiopipe config set format wav`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			return runConfigSet(env, key, value)
		},
	}
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value.

Prints the value to stdout, or nothing if not set.`,
		Example: `  audiopipe config get output-dir`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List all configuration values",
		Example: `  audiopipe config list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(env)
		},
	}
}

// runConfigSet validates and persists a configuration value.
func runConfigSet(env *Env, key, value string) error {
	if !slices.Contains(validConfigKeys, key) {
		return fmt.Errorf("unknown config key %q (valid: output-dir, format, bitrate)", key)
	}

	switch key {
	case config.KeyOutputDir:
		if err := config.ValidOutputDir(value); err != nil {
			return err
		}
	case config.KeyFormat:
		if _, err := extract.ParseFormat(value); err != nil {
			return err
		}
	case config.KeyBitrate:
		if !bitratePattern.MatchString(value) {
			return fmt.Errorf("%w: %q (expected e.g. 192k)", ErrInvalidBitrate, value)
		}
	}

	if err := config.Save(key, value); err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "%s = %s\n", key, value)
	return nil
}

// runConfigGet prints a configuration value.
func runConfigGet(env *Env, key string) error {
	if !slices.Contains(validConfigKeys, key) {
		return fmt.Errorf("unknown config key %q (valid: output-dir, format, bitrate)", key)
	}

	value, err := config.Get(key)
	if err != nil {
		return err
	}
	if value != "" {
		fmt.Fprintln(env.Stdout, value)
	}
	return nil
}

// runConfigList prints all configuration values.
func runConfigList(env *Env) error {
	values, err := config.List()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		fmt.Fprintf(env.Stdout, "%s = %s\n", k, values[k])
	}
	return nil
}
