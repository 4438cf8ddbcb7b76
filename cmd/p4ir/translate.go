package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/sdn-platform/p4ir/ir"
	"github.com/sdn-platform/p4ir/schema"
)

var translateCmd struct {
	SchemaPath string
	ValuesPath string
}

// valueEntry is one PI value in a translate input file. PrefixLen is
// set for LPM matches and Mask for ternary matches.
type valueEntry struct {
	Table     string `yaml:"table"`
	Field     string `yaml:"field"`
	Bytes     string `yaml:"bytes"`
	PrefixLen int    `yaml:"prefix_len,omitempty"`
	Mask      string `yaml:"mask,omitempty"`
}

var translateCommand = &cobra.Command{
	Use:   "translate",
	Short: "Batch-render a file of PI match values against a schema",
	RunE: func(_ *cobra.Command, _ []string) error {
		s, err := schema.Load(translateCmd.SchemaPath)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(translateCmd.ValuesPath)
		if err != nil {
			return fmt.Errorf("failed to read values file: %w", err)
		}
		var entries []valueEntry
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("failed to parse YAML values: %w", err)
		}
		log.Debugw("translating values", "count", len(entries))

		// Conversions are pure functions, so entries can be rendered
		// concurrently; results keep input order.
		rendered := make([]string, len(entries))
		wg := errgroup.Group{}
		for i, entry := range entries {
			i, entry := i, entry
			wg.Go(func() error {
				text, err := translateEntry(s, entry)
				if err != nil {
					return fmt.Errorf("%s.%s: %w", entry.Table, entry.Field, err)
				}
				rendered[i] = text
				return nil
			})
		}
		if err := wg.Wait(); err != nil {
			return err
		}

		for i, entry := range entries {
			fmt.Printf("%s.%s = %s\n", entry.Table, entry.Field, rendered[i])
		}
		return nil
	},
}

func translateEntry(s *schema.Schema, entry valueEntry) (string, error) {
	table, err := s.Table(entry.Table)
	if err != nil {
		return "", err
	}
	field, err := table.MatchField(entry.Field)
	if err != nil {
		return "", err
	}
	format, err := s.FieldFormat(*field)
	if err != nil {
		return "", err
	}
	pi, err := parseHexBytes(entry.Bytes)
	if err != nil {
		return "", err
	}

	switch field.Match {
	case schema.MatchLPM:
		lpm, err := ir.LPMByteString(format, field.Bitwidth, pi, entry.PrefixLen)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s/%d", lpm.Value, lpm.PrefixLength), nil
	case schema.MatchTernary:
		mask, err := parseHexBytes(entry.Mask)
		if err != nil {
			return "", err
		}
		ternary, err := ir.TernaryByteString(format, field.Bitwidth, pi, mask)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s &&& %s", ternary.Value, ternary.Mask), nil
	default:
		value, err := ir.FormatByteString(format, field.Bitwidth, pi)
		if err != nil {
			return "", err
		}
		return value.Text(), nil
	}
}

func init() {
	translateCommand.Flags().StringVarP(&translateCmd.SchemaPath, "schema", "s", "", "Path to the schema YAML file (required)")
	translateCommand.Flags().StringVarP(&translateCmd.ValuesPath, "values", "i", "", "Path to the YAML file with PI values (required)")
	translateCommand.MarkFlagRequired("schema")
	translateCommand.MarkFlagRequired("values")
	rootCmd.AddCommand(translateCommand)
}
