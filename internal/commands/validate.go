package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"evalgo.org/hostreg/internal/registry"
	"evalgo.org/hostreg/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a host registration document",
	Long: `Validate a host registration request (JSON or YAML) with the same rules
the API applies to POST /api/v1/hosts. Nothing is stored.

Examples:
  hostreg validate my-host.json
  hostreg validate my-host.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	in, err := decodeHostInput(data)
	if err != nil {
		return err
	}

	result := validation.New().Validate(in)
	return printValidation(cmd.OutOrStdout(), result)
}

// decodeHostInput accepts JSON or YAML. YAML is converted to JSON first so
// ma_urls and addresses go through the same decoding as API requests.
func decodeHostInput(data []byte) (*registry.HostInput, error) {
	if !json.Valid(data) {
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		data = converted
	}

	var in registry.HostInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &in, nil
}

func printValidation(out io.Writer, result *validation.ValidationResult) error {
	if result.Valid {
		fmt.Fprintln(out, "✓ Document is valid")
		return nil
	}

	fmt.Fprintln(out, "✗ Validation failed:")
	for _, e := range result.Errors {
		if e.Value != nil {
			fmt.Fprintf(out, "  - %s: %s (value: %v)\n", e.Field, e.Message, e.Value)
		} else {
			fmt.Fprintf(out, "  - %s: %s\n", e.Field, e.Message)
		}
	}

	return fmt.Errorf("validation failed")
}
