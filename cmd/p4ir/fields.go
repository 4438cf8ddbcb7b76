package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sdn-platform/p4ir/schema"
)

var fieldsCmd struct {
	SchemaPath string
}

var fieldsCommand = &cobra.Command{
	Use:   "fields",
	Short: "List every field of a schema with its resolved wire format",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := schema.Load(fieldsCmd.SchemaPath)
		if err != nil {
			return err
		}
		log.Debugw("loaded schema", "path", fieldsCmd.SchemaPath, "tables", len(s.Tables), "actions", len(s.Actions))

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FIELD\tMATCH\tBITWIDTH\tFORMAT")
		for _, table := range s.Tables {
			for _, field := range table.MatchFields {
				format, err := s.FieldFormat(field)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s.%s\t%s\t%d\t%s\n", table.Name, field.Name, field.Match, field.Bitwidth, format)
			}
		}
		for _, action := range s.Actions {
			for _, param := range action.Params {
				format, err := s.FieldFormat(param)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s.%s\t-\t%d\t%s\n", action.Name, param.Name, param.Bitwidth, format)
			}
		}
		return w.Flush()
	},
}

func init() {
	fieldsCommand.Flags().StringVarP(&fieldsCmd.SchemaPath, "schema", "s", "", "Path to the schema YAML file (required)")
	fieldsCommand.MarkFlagRequired("schema")
	rootCmd.AddCommand(fieldsCommand)
}
