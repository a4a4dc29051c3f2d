package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/conduit-lang/jason/internal/cli/ui"
	"github.com/conduit-lang/jason/internal/serializer"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type renderOptions struct {
	schemasFile string
	typ         string
	schemaName  string
	extra       map[string]string
	many        bool
	pretty      bool
}

// NewRenderCommand creates the render command
func NewRenderCommand() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [data.json]",
		Short: "Serialize JSON data into a JSON:API document",
		Long: `Serialize a JSON object or array of objects into a JSON:API document
and print it. Data is read from the given file, or from stdin when the
argument is omitted or "-".

Extra values are parsed as YAML scalars, so count=2 is the number 2.

Examples:
  jason render --type article article.json
  jason render --schemas defs.yaml --type article --many --extra count=2 articles.json
  cat comment.json | jason render --type comment --schema only-body`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.schemasFile, "schemas", "", "Schema definitions file (default: built-in article schemas)")
	cmd.Flags().StringVarP(&opts.typ, "type", "t", "", "Resource type of the primary data")
	cmd.Flags().StringVarP(&opts.schemaName, "schema", "s", serializer.DefaultSchema, "Schema name")
	cmd.Flags().StringToStringVarP(&opts.extra, "extra", "e", nil, "Extra data passed to top-level meta and links (key=value)")
	cmd.Flags().BoolVar(&opts.many, "many", false, "Render a collection even when the data is a single object")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", true, "Indent the output")
	cmd.MarkFlagRequired("type")

	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions, args []string) error {
	reg, err := loadRegistry(opts.schemasFile, false)
	if err != nil {
		return err
	}

	source := "-"
	if len(args) > 0 {
		source = args[0]
	}
	payload, err := readPayload(cmd.InOrStdin(), source)
	if err != nil {
		return err
	}
	if obj, ok := payload.(map[string]any); ok && opts.many {
		payload = []any{obj}
	}

	extra, err := parseExtra(opts.extra)
	if err != nil {
		return err
	}

	doc, err := serializer.New(reg).Serialize(opts.typ, payload,
		serializer.WithExtraData(extra),
		serializer.WithSchemaName(opts.schemaName),
	)
	if err != nil {
		var notFound *serializer.SchemaNotFoundError
		if errors.As(err, &notFound) {
			suggestions := ui.SuggestSchemas(notFound.Type, notFound.Schema, reg.Schemas())
			fmt.Fprint(cmd.ErrOrStderr(), ui.SchemaNotFoundError(notFound.Type, notFound.Schema, suggestions, color.NoColor))
		}
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}

func readPayload(stdin io.Reader, source string) (any, error) {
	var (
		data []byte
		err  error
	)
	if source == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse data as JSON: %w", err)
	}
	return payload, nil
}

// parseExtra decodes each value as a YAML scalar
func parseExtra(raw map[string]string) (serializer.ExtraData, error) {
	extra := make(serializer.ExtraData, len(raw))
	for key, value := range raw {
		var decoded any
		if err := yaml.Unmarshal([]byte(value), &decoded); err != nil {
			return nil, fmt.Errorf("invalid value for extra %q: %w", key, err)
		}
		extra[key] = decoded
	}
	return extra, nil
}
