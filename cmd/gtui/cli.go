package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ethanniser/gtui/ui"
)

func newRootCommand(args []string) *cobra.Command {
	var showVersion bool
	var opts appOptions
	root := &cobra.Command{
		Use:           "gtui",
		Short:         "Terminal viewer for Graphite stacks",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				return runVersionCommand(cmd.OutOrStdout())
			}
			return runDefault(opts)
		},
	}
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "Print gtui version and exit")
	root.PersistentFlags().StringVar(&opts.dir, "dir", "", "Repository directory (defaults to the working directory)")
	root.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Log debug output")
	root.Flags().BoolVar(&opts.noWatch, "no-watch", false, "Disable reloading when Graphite metadata changes")

	root.AddCommand(
		newListCommand(&opts),
		newConfigCommand(),
	)

	if len(args) > 1 {
		root.SetArgs(args[1:])
	}
	return root
}

func newListCommand(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "Print the stack tree and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			closer, err := setupLogging(opts.verbose, false)
			if err != nil {
				return err
			}
			defer closer.Close()
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			dir, err := resolveDir(opts.dir)
			if err != nil {
				return err
			}
			return runList(cmd.Context(), cmd.OutOrStdout(), openEnvironment(dir, cfg))
		},
	}
}

func runList(ctx context.Context, out io.Writer, env environment) error {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := env.load(ctx)
	if err != nil {
		return err
	}
	rows := ui.BuildStackRows(data)
	for _, line := range ui.StackLines(rows, "", ui.FitWidth(rows), ui.PlainStyles()) {
		fmt.Fprintln(out, strings.TrimRight(strings.TrimPrefix(line, "  "), " "))
	}
	return nil
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the gtui configuration file",
		Args:  cobra.NoArgs,
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exists, err := ConfigExists()
			if err != nil {
				return err
			}
			if exists && !force {
				fmt.Fprintln(os.Stderr, "gtui warning: config already exists, use --force to overwrite")
				return nil
			}
			if err := SaveConfig(DefaultConfig()); err != nil {
				return err
			}
			path, _ := configPath()
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote "+path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
