// Package main is the entry point for the lua-readline CLI application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	lrcli "github.com/motoprogger/lua-readline/internal/cli"
	"github.com/motoprogger/lua-readline/internal/trace"
	"github.com/motoprogger/lua-readline/pkg/version"
)

func main() {
	stopTrace := trace.Init()
	defer stopTrace()

	app := &cli.Command{
		Name:                  "lua-readline",
		Usage:                 "Interactive Lua with readline-style editing and completion",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "",
				Usage:   "Log level (debug, info, warn, error); overrides the configured level",
				Sources: cli.EnvVars("LUA_READLINE_LOG_LEVEL"),
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			// Bare invocation drops into the REPL.
			return lrcli.Repl(lrcli.ReplParams{
				LogLevel: cmd.String("log-level"),
			})
		},
		Commands: []*cli.Command{
			{
				Name:  "repl",
				Usage: "Start the interactive Lua read-eval-print loop",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return lrcli.Repl(lrcli.ReplParams{
						LogLevel: cmd.String("log-level"),
					})
				},
			},
			{
				Name:      "run",
				Usage:     "Run a Lua script with the readline module preloaded",
				ArgsUsage: "<script.lua> [args...]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("script path required")
					}
					return lrcli.Run(lrcli.RunParams{
						LogLevel: cmd.String("log-level"),
						Path:     cmd.Args().Get(0),
						Args:     cmd.Args().Slice()[1:],
					})
				},
			},
			{
				Name:      "eval",
				Usage:     "Evaluate an inline Lua chunk",
				ArgsUsage: "<code>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("code required")
					}
					return lrcli.Eval(lrcli.EvalParams{
						LogLevel: cmd.String("log-level"),
						Code:     cmd.Args().Get(0),
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate lua-readline configuration files",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := ""
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return lrcli.Validate(lrcli.ValidateParams{
						ConfigPath: configPath,
					})
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for lua-readline configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return lrcli.Schema(lrcli.SchemaParams{
						Output: outputPath,
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show effective configuration and history state",
				Action: func(_ context.Context, _ *cli.Command) error {
					return lrcli.Status()
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
