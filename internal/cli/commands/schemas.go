package commands

import (
	"github.com/conduit-lang/jason/internal/cli/ui"
	"github.com/conduit-lang/jason/internal/serializer"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewSchemasCommand creates the schemas command
func NewSchemasCommand() *cobra.Command {
	var schemasFile string

	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "List registered schemas",
		Long: `List every (type, schema) pair with its identifier field and
relationships.

Examples:
  jason schemas
  jason schemas --schemas defs.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(schemasFile, false)
			if err != nil {
				return err
			}

			table := ui.NewTable(cmd.OutOrStdout(), color.NoColor, "TYPE", "SCHEMA", "ID", "RELATIONSHIPS")
			for _, key := range reg.Schemas() {
				schema, err := reg.Resolve(key.Type, key.Schema)
				if err != nil {
					return err
				}
				id := schema.ID
				if id == "" {
					id = serializer.DefaultIDField
				}
				table.AddRow(key.Type, key.Schema, id, describeRelationships(schema.Relationships))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&schemasFile, "schemas", "", "Schema definitions file (default: built-in article schemas)")

	return cmd
}
