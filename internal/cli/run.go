package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkarpele/havengate/internal/contract"
	"github.com/dkarpele/havengate/internal/modelcall"
	"github.com/dkarpele/havengate/internal/pipeline"
	"github.com/dkarpele/havengate/internal/safety"
	"github.com/dkarpele/havengate/internal/thinkmode"
	"github.com/dkarpele/havengate/internal/validate"
)

var (
	runInput      string
	runMode       string
	runAPIURL     string
	runModel      string
	runMaxTokens  int
	runTimeout    time.Duration
	runContractsPath  string
	runModesPath      string
	runValidation string
	runSafetyPath     string
	runShowPrompt bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "User input for the activity (required)")
	runCmd.Flags().StringVar(&runMode, "mode", "", "Requested thinking mode (subject to override gates)")
	runCmd.Flags().StringVar(&runAPIURL, "api-url", "http://localhost:11434/v1/chat/completions", "OpenAI-compatible completions endpoint")
	runCmd.Flags().StringVar(&runModel, "model", "llama3.2", "Model name sent to the endpoint")
	runCmd.Flags().IntVar(&runMaxTokens, "max-tokens", 800, "Completion token limit")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 60*time.Second, "Model call timeout")
	runCmd.Flags().StringVar(&runContractsPath, "contracts", "", "Path to contract YAML")
	runCmd.Flags().StringVar(&runModesPath, "modes", "", "Path to thinking-mode YAML")
	runCmd.Flags().StringVar(&runValidation, "validation", "", "Path to validator override YAML")
	runCmd.Flags().StringVar(&runSafetyPath, "safety", "", "Path to safety pattern YAML")
	runCmd.Flags().BoolVar(&runShowPrompt, "show-prompt", false, "Print the assembled prompt to stderr before the call")
	_ = runCmd.MarkFlagRequired("input")
}

var runCmd = &cobra.Command{
	Use:   "run <activity>",
	Short: "Run one activity through the full pipeline",
	Long: "Executes the fixed stage order for a single activity: contract lookup,\n" +
		"mode resolution, prompt assembly, one model call, output validation,\n" +
		"and the safety filter. Prints the delivered output.\n\n" +
		"Exit code 0 on delivery, 1 on any stage failure.",
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	runner, err := buildRunner()
	if err != nil {
		return err
	}

	client := modelcall.New(modelcall.Config{
		APIURL:    runAPIURL,
		APIKey:    os.Getenv("HAVENGATE_API_KEY"),
		Model:     runModel,
		MaxTokens: runMaxTokens,
		Timeout:   runTimeout,
	})

	out, err := runner.Run(cmd.Context(), args[0], runInput, runMode, client.Complete)
	if err != nil {
		var se *pipeline.StageError
		if errors.As(err, &se) {
			fmt.Fprintf(os.Stderr, "failed at %s: %s\n", se.Stage, se.Reason)
			for _, d := range se.Details {
				fmt.Fprintf(os.Stderr, "  %s\n", d)
			}
			os.Exit(1)
		}
		return err
	}

	if runShowPrompt {
		fmt.Fprintln(os.Stderr, out.Prompt)
		fmt.Fprintln(os.Stderr)
	}
	if out.Mode != "" {
		fmt.Fprintf(os.Stderr, "mode: %s\n", out.Mode)
	}
	if out.Safety.Category != "" {
		redirected, _ := json.Marshal(out.Safety)
		fmt.Fprintf(os.Stderr, "safety: %s\n", string(redirected))
	}

	fmt.Println(out.Output)
	return nil
}

func buildRunner() (*pipeline.Runner, error) {
	contracts, err := contract.Load(runContractsPath)
	if err != nil {
		return nil, err
	}
	modes, err := thinkmode.Load(runModesPath)
	if err != nil {
		return nil, err
	}
	overrides, err := validate.Load(runValidation)
	if err != nil {
		return nil, err
	}
	filter, err := safety.Load(runSafetyPath)
	if err != nil {
		return nil, err
	}

	return pipeline.NewRunner(
		pipeline.WithContracts(contracts),
		pipeline.WithModes(modes),
		pipeline.WithValidator(validate.New(contracts, overrides)),
		pipeline.WithSafety(filter),
	), nil
}
