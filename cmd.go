package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sinu-sinu/content-automation-ai/config"
	"github.com/sinu-sinu/content-automation-ai/llm"
	"github.com/sinu-sinu/content-automation-ai/metadata"
	"github.com/sinu-sinu/content-automation-ai/profile"
	"github.com/sinu-sinu/content-automation-ai/research"
	"github.com/sinu-sinu/content-automation-ai/scorer"
	"github.com/sinu-sinu/content-automation-ai/types"
	"github.com/sinu-sinu/content-automation-ai/workflow"
	"github.com/sinu-sinu/content-automation-ai/writer"
)

// exit codes: 0 succeeded, 1 failed, 2 exhausted
const (
	exitOK        = 0
	exitFailed    = 1
	exitExhausted = 2
)

type runFlags struct {
	topic          string
	channel        string
	format         string
	configPath     string
	fixtures       bool
	withMetadata   bool
	nonInteractive bool
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	flags := &runFlags{}

	rootCmd := &cobra.Command{
		Use:           "content-automation-ai",
		Short:         "Self-correcting script pipeline for YouTube channels",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	exitCode := exitOK
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Research a topic, draft a script and refine it until it clears the channel's quality bar",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runPipeline(cmd, flags)
			exitCode = code
			return err
		},
	}

	runCmd.Flags().StringVarP(&flags.topic, "topic", "t", "", "topic to research (empty = auto-discover trending)")
	runCmd.Flags().StringVarP(&flags.channel, "channel", "c", "", "channel name (style profile key)")
	runCmd.Flags().StringVarP(&flags.format, "format", "f", "", "script format: "+strings.Join(writer.Formats, " | "))
	runCmd.Flags().StringVar(&flags.configPath, "config", "config.yaml", "path to pipeline config")
	runCmd.Flags().BoolVar(&flags.fixtures, "fixtures", false, "use pre-recorded trending data instead of live sources")
	runCmd.Flags().BoolVar(&flags.withMetadata, "metadata", false, "generate YouTube metadata for a succeeded run")
	runCmd.Flags().BoolVar(&flags.nonInteractive, "non-interactive", false, "never prompt; fail on missing input")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		if exitCode == exitOK {
			exitCode = exitFailed
		}
	}
	return exitCode
}

func runPipeline(cmd *cobra.Command, flags *runFlags) (int, error) {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return exitFailed, err
	}

	if !flags.nonInteractive {
		promptMissing(flags)
	}
	if flags.channel == "" {
		flags.channel = "fireship"
	}
	flags.format = writer.NormalizeFormat(flags.format)

	// profile problems are fatal before the run even starts
	prof, err := profile.Load(cfg.Paths.Profiles, flags.channel)
	if err != nil {
		return exitFailed, err
	}
	log.Printf("[init] Loaded style profile: %s (threshold %d, max %d refinements)",
		prof.ChannelName, prof.Threshold, prof.MaxRefinements)

	client, err := llm.NewOpenAIClient(cfg)
	if err != nil {
		return exitFailed, err
	}

	topic := types.Topic{Title: strings.TrimSpace(flags.topic), Origin: types.OriginUser}
	if topic.Title == "" {
		topic.Origin = types.OriginDiscovered
	}

	orch := workflow.New(cfg,
		research.New(cfg, client, prof, flags.fixtures),
		writer.New(client, prof),
		scorer.New(cfg, client, prof),
		prof, flags.format)

	result, runErr := orch.Run(cmd.Context(), topic)

	if err := result.Save(cfg.Paths.Output); err != nil {
		log.Printf("[init] ⚠️  Could not persist run artifacts: %v", err)
	}
	printResult(result)

	if runErr != nil {
		return exitFailed, nil // already reported through the result summary
	}

	if flags.withMetadata && result.Status == workflow.StatusSucceeded {
		meta, err := metadata.New(client, prof).Run(cmd.Context(), result.Topic, result.Selected.Draft)
		if err != nil {
			log.Printf("[metadata] ⚠️  Metadata generation failed: %v — script is unaffected", err)
		} else if data, err := json.MarshalIndent(meta, "", "  "); err == nil {
			fmt.Printf("\nMETADATA:\n%s\n", data)
		}
	}

	if result.Status == workflow.StatusExhausted {
		return exitExhausted, nil
	}
	return exitOK, nil
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[init] No %s, using built-in defaults", path)
			return config.Default(), nil
		}
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// promptMissing asks for channel/topic/format on stdin, run.py style.
func promptMissing(flags *runFlags) {
	reader := bufio.NewReader(os.Stdin)
	ask := func(label string) string {
		fmt.Printf("%s: ", label)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	if flags.channel == "" {
		flags.channel = ask("Channel name (e.g. fireship)")
	}
	if flags.topic == "" {
		flags.topic = ask("Topic (empty = auto-discover trending)")
	}
	if flags.format == "" {
		flags.format = ask(fmt.Sprintf("Format (%s) [default: %s]",
			strings.Join(writer.Formats, "/"), writer.Format100Seconds))
	}
}

func printResult(r *workflow.Result) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("WORKFLOW COMPLETE")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Run ID:   %s\n", r.RunID)
	fmt.Printf("Channel:  %s\n", r.Channel)
	fmt.Printf("Topic:    %s\n", r.Topic.Title)
	fmt.Printf("Status:   %s\n", r.Status)
	fmt.Printf("Summary:  %s\n", r.Summary)

	for _, it := range r.Iterations {
		passed := "fail"
		if it.Score.Passed {
			passed = "pass"
		}
		degraded := ""
		if it.Score.Degraded {
			degraded = " degraded"
		}
		fmt.Printf("  - v%d: %d/100 (%s%s)\n", it.Draft.Version, it.Score.Combined, passed, degraded)
	}

	if r.Selected != nil {
		fmt.Printf("\nFINAL SCRIPT (v%d, ~%.0fs):\n\n%s\n", r.Selected.Draft.Version,
			r.Selected.Draft.EstimatedSec, r.Selected.Draft.Text)
	}
	fmt.Println(strings.Repeat("=", 70))
}
