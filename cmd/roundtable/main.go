package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hupe1980/roundtable/agent"
	"github.com/hupe1980/roundtable/config"
	"github.com/hupe1980/roundtable/debate"
	"github.com/hupe1980/roundtable/logging"
	"github.com/hupe1980/roundtable/model"
)

type runOptions struct {
	panelPath string
	envFile   string
	pause     time.Duration
	pauseSet  bool
	logLevel  string
	logFormat string
}

// modelFactory builds the provider model for one agent definition.
type modelFactory func(ctx context.Context, def agent.Definition, apiKey string) (model.Model, error)

// environment bundles the process surfaces so tests can replace them.
type environment struct {
	stdout   io.Writer
	stderr   io.Writer
	lookup   config.LookupFunc
	newModel modelFactory
}

func main() {
	env := environment{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		lookup:   os.LookupEnv,
		newModel: agent.NewModel,
	}
	if err := newRootCmd(env).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(env environment) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "roundtable [topic]",
		Short: "Run a scripted AI roundtable between OpenAI, Anthropic and Gemini agents",
		Long: `roundtable seats three language-model personas around a table and lets
them speak in a fixed order. Every speaker sees the full conversation so far.

Credentials are read from OPENAI_API_KEY, ANTHROPIC_API_KEY and GEMINI_API_KEY.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			topic := ""
			if len(args) == 1 {
				topic = args[0]
			}
			opts.pauseSet = cmd.Flags().Changed("pause")
			return run(ctx, env, opts, topic)
		},
	}

	cmd.Flags().StringVar(&opts.panelPath, "panel", "", "YAML panel file (default: built-in panel)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "Optional .env file with API keys")
	cmd.Flags().DurationVar(&opts.pause, "pause", debate.DefaultPause, "Pause between turns")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")

	return cmd
}

func run(ctx context.Context, env environment, opts runOptions, topic string) error {
	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(opts.logFormat)
	if err != nil {
		return err
	}
	if opts.pauseSet && opts.pause < 0 {
		return fmt.Errorf("--pause must not be negative, got %s", opts.pause)
	}
	runID := uuid.NewString()
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: format,
		Output: env.stderr,
		RunID:  runID,
	})

	lookup := env.lookup
	if opts.envFile != "" {
		fileEnv, err := config.LoadEnvFile(opts.envFile)
		if err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
		lookup = config.Overlay(lookup, fileEnv)
	}

	panel := config.DefaultPanel()
	if opts.panelPath != "" {
		if panel, err = config.LoadPanel(opts.panelPath); err != nil {
			return err
		}
	}
	if topic != "" {
		panel.Topic = topic
	}
	if opts.pauseSet {
		panel.Pause = opts.pause
	}
	if err := panel.Validate(); err != nil {
		return fmt.Errorf("invalid panel: %w", err)
	}

	creds := config.LoadCredentials(lookup)
	if err := creds.Require(config.RequiredProviders()...); err != nil {
		return err
	}

	agents := make([]agent.Agent, 0, len(panel.Agents))
	for _, def := range panel.Agents {
		llm, err := env.newModel(ctx, def, creds[def.Provider])
		if err != nil {
			return fmt.Errorf("agent %q: %w", def.Name, err)
		}
		a, err := agent.New(def, llm, func(o *agent.Options) {
			o.Output = env.stdout
			o.Logger = logger.WithComponent("agent").WithContext("agent", def.Name)
		})
		if err != nil {
			return err
		}
		agents = append(agents, a)
	}

	schedule, err := debate.ResolveSchedule(agents, panel.Schedule)
	if err != nil {
		return err
	}

	d, err := debate.New(schedule, func(o *debate.Options) {
		o.Pause = panel.Pause
		o.Output = env.stdout
		o.Logger = logger.WithComponent("debate")
	})
	if err != nil {
		return err
	}

	_, err = d.Run(ctx, panel.Topic)
	return err
}
