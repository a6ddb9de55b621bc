package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ticketbranch/config"
	clierrors "github.com/randalmurphal/ticketbranch/errors"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write settings",
		Long: `Read and write settings.

Values resolve from, highest first: flags, TICKETBRANCH_* environment
variables, .ticketbranch.yaml in the git root, ~/.config/ticketbranch/config.yaml,
and built-in defaults. Credentials can only be stored in the global file.

Keys: ` + strings.Join(config.AllKeys(), ", "),
	}

	cmd.AddCommand(
		a.newConfigGetCmd(),
		a.newConfigSetCmd(),
		a.newConfigUnsetCmd(),
		a.newConfigListCmd(),
		a.newConfigPathCmd(),
	)
	return cmd
}

func (a *app) loadConfig(cmd *cobra.Command) (*env, error) {
	dir, err := workDir("")
	if err != nil {
		return nil, err
	}
	return a.load(cmd, dir, nil)
}

func (a *app) newConfigGetCmd() *cobra.Command {
	var showSource bool

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !config.IsKnown(key) {
				return unknownKey(key)
			}
			e, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			value, source := e.resolved.GetWithSource(key)
			out := config.Display(key, value)
			if showSource && source != "" {
				out += " (" + string(source) + ")"
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSource, "source", false, "also print where the value came from")
	return cmd
}

func (a *app) newConfigSetCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Save a setting to the global or repository config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !config.IsKnown(key) {
				return unknownKey(key)
			}
			save := config.NewSaveConfig()

			if local {
				e, err := a.loadConfig(cmd)
				if err != nil {
					return err
				}
				if e.gitRoot == "" {
					return clierrors.NewNotInGitRepoError("")
				}
				if err := save.SaveLocal(e.gitRoot, key, value); err != nil {
					return fmt.Errorf("%w: %w", clierrors.ErrInvalidInput, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, config.Display(key, value), config.LocalConfigName)
				return nil
			}

			if err := save.SaveGlobal(key, value); err != nil {
				return fmt.Errorf("%w: %w", clierrors.ErrInvalidInput, err)
			}
			path, _ := save.GlobalPath()
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, config.Display(key, value), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "write to .ticketbranch.yaml in the git root")
	return cmd
}

func (a *app) newConfigUnsetCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a setting from a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !config.IsKnown(key) {
				return unknownKey(key)
			}
			save := config.NewSaveConfig()

			if local {
				e, err := a.loadConfig(cmd)
				if err != nil {
					return err
				}
				if e.gitRoot == "" {
					return clierrors.NewNotInGitRepoError("")
				}
				return save.DeleteLocalKey(e.gitRoot, key)
			}
			return save.DeleteGlobalKey(key)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "edit .ticketbranch.yaml in the git root")
	return cmd
}

func (a *app) newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every setting with its source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, key := range config.AllKeys() {
				value, source := e.resolved.GetWithSource(key)
				fmt.Fprintf(out, "%s = %s (%s)\n", key, config.Display(key, value), source)
			}
			return nil
		},
	}
}

func (a *app) newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workDir("")
			if err != nil {
				return err
			}
			rc := config.NewResolverConfig(dir)
			rc.GitRootFinder = gitRoot
			rc.ErrWriter = cmd.ErrOrStderr()
			resolver := config.NewResolver(rc)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "global: %s\n", resolver.GlobalPath())
			local := resolver.LocalPath()
			if local == "" {
				local = "(not in a git repository)"
			}
			fmt.Fprintf(out, "local: %s\n", local)
			return nil
		},
	}
}

func unknownKey(key string) error {
	return fmt.Errorf("%w: unknown config key %q (valid keys: %s)",
		clierrors.ErrInvalidInput, key, strings.Join(config.AllKeys(), ", "))
}
