package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wundergraph/graphql-ts-codegen/pkg/codegen"
	"github.com/wundergraph/graphql-ts-codegen/pkg/gqlconfig"
	"github.com/wundergraph/graphql-ts-codegen/pkg/writer"
)

var (
	generateStdout bool
	generateDryRun bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:     "generate",
	Short:   "runs all configured generators and writes the output files",
	Example: "graphql-ts-codegen generate --config graphql-codegen.yml",
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

		options := []codegen.RunnerOption{
			codegen.WithFS(fsys),
			codegen.WithLogger(newLogger()),
			codegen.WithWorkerCount(viper.GetInt("concurrency")),
			codegen.WithDryRun(generateDryRun),
		}
		if generateStdout {
			options = append(options, codegen.WithWriter(writer.NewStdoutWriter(cmd.OutOrStdout())))
		}

		report, err := codegen.NewRunner(options...).Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		for _, warning := range report.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), "WARN:", warning)
		}
		if generateStdout {
			return nil
		}
		verb := "wrote"
		if generateDryRun {
			verb = "would write"
		}
		for _, path := range report.Files {
			fmt.Fprintln(cmd.OutOrStdout(), verb, path)
		}
		for _, path := range report.Skipped {
			fmt.Fprintln(cmd.OutOrStdout(), "unchanged", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVar(&generateStdout, "stdout", false, "print generated files to stdout instead of writing them")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "generate without writing files or running hooks")
}
