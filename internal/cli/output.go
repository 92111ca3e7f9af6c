package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readJSONFile decodes a bulk payload from path, or stdin when path is "-".
func readJSONFile(cmd *cobra.Command, path string, dest interface{}) error {
	if path == "" {
		return appErrors.Clone(appErrors.ErrValidation, "--file is required")
	}

	if path == "-" {
		if err := json.NewDecoder(cmd.InOrStdin()).Decode(dest); err != nil {
			return fmt.Errorf("decode stdin: %w", err)
		}
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// optionalString returns a pointer only when the flag was set explicitly.
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}
	return &value
}

type pageFlags struct {
	page  int
	limit int
}

func (p *pageFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.page, "page", 1, "page number")
	cmd.Flags().IntVar(&p.limit, "limit", 20, "page size")
}
