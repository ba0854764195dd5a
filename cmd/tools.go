package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/localrank/insight-server/internal/tools"
	"github.com/localrank/insight-server/pkg/localrank"
)

var (
	callArgPairs []string
	callArgsJSON string
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect and invoke insight tools locally",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the tool catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := initService(cfg, nil)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"tools": svc.Definitions()})
	},
}

var toolsCallCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Run one tool invocation with the configured API key",
	Long:  "Runs a single tool invocation locally and prints the result envelope to stdout. Failures are reported inside the envelope, same as over HTTP.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("call"); err != nil {
			return err
		}

		toolArgs, err := collectCallArgs(callArgsJSON, callArgPairs)
		if err != nil {
			return err
		}

		svc, err := initService(cfg, nil)
		if err != nil {
			return err
		}

		var cred localrank.Credential
		if cfg.API.Key != "" {
			cred = localrank.APIKeyCredential(cfg.API.Key)
		}

		env := svc.Invoke(cmd.Context(), args[0], cred, toolArgs)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	},
}

// collectCallArgs merges --args-json with repeated --arg key=value flags.
// Explicit pairs win on conflict. Values stay strings; the tool argument
// accessors coerce numerics.
func collectCallArgs(rawJSON string, pairs []string) (tools.Args, error) {
	out := tools.Args{}

	if rawJSON != "" {
		if err := json.Unmarshal([]byte(rawJSON), &out); err != nil {
			return nil, eris.Wrap(err, "parse --args-json")
		}
		if out == nil {
			out = tools.Args{}
		}
	}

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, eris.Errorf("malformed --arg %q, want key=value", pair)
		}
		out[key] = value
	}

	return out, nil
}

func init() {
	toolsCallCmd.Flags().StringArrayVar(&callArgPairs, "arg", nil, "tool argument as key=value (repeatable)")
	toolsCallCmd.Flags().StringVar(&callArgsJSON, "args-json", "", "tool arguments as a JSON object")

	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsCallCmd)
	rootCmd.AddCommand(toolsCmd)
}
