package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wundergraph/graphql-ts-codegen/pkg/document"
	"github.com/wundergraph/graphql-ts-codegen/pkg/gqlconfig"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "checks the config, schema and documents without generating",
	RunE: func(cmd *cobra.Command, args []string) error {
		fsys := afero.NewOsFs()

		configPath, err := resolveConfigPath(fsys)
		if err != nil {
			return err
		}
		cfg, err := gqlconfig.Load(fsys, configPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "config %s OK\n", configPath)

		schema, err := cfg.LoadSchema(fsys)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema OK (%d types)\n", len(schema.Types))

		if len(cfg.Documents) > 0 {
			collector := document.NewCollector(fsys, document.WithLogger(newLogger()))
			docs, err := collector.Collect(cfg.Documents)
			if err != nil {
				return err
			}
			for _, warning := range docs.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "WARN:", warning)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "documents OK (%d operations, %d fragments)\n",
				len(docs.Operations()), len(docs.Fragments()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
