package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/initializ/stepper/config"
	"github.com/initializ/stepper/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate stepper.yaml",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	var out io.Writer = os.Stdout
	if cmd != nil {
		out = cmd.OutOrStdout()
	}

	data, err := os.ReadFile(cfgFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && cfgFile == config.DefaultPath {
			fmt.Fprintf(out, "%s not found; defaults apply (endpoint %s)\n", cfgFile, types.DefaultEndpoint) //nolint:errcheck
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	cfg, findings, err := types.DecodeConfig(data)
	if err != nil {
		return err
	}

	if len(findings) > 0 {
		fmt.Fprintf(out, "%s: %d problem(s)\n", cfgFile, len(findings)) //nolint:errcheck
		for _, f := range findings {
			fmt.Fprintf(out, "  - %s\n", f) //nolint:errcheck
		}
		return fmt.Errorf("%w: %d problem(s) in %s", types.ErrInvalidConfig, len(findings), cfgFile)
	}

	fmt.Fprintf(out, "%s is valid (endpoint %s, rearm %t)\n", cfgFile, cfg.Endpoint, cfg.RearmEnabled()) //nolint:errcheck
	return nil
}
