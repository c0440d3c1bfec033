package cmd

import (
	"fmt"
	"os"

	log "github.com/jensneuse/abstractlogger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wundergraph/graphql-ts-codegen/pkg/gqlconfig"
)

var (
	cfgFile     string
	debug       bool
	concurrency int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "graphql-ts-codegen",
	Short: "generates TypeScript types from a GraphQL schema and operations",
	Long: `graphql-ts-codegen reads a GraphQL schema and the operations of a
project and generates the matching TypeScript declarations: one result type
and one variables type per operation, plus the schema-side enums, input
objects and scalar aliases they reference.

Configuration lives in a graphql-codegen.yml file or under the
"graphqlCodegen" key of package.json. Every flag can also be set through
the environment with the GRAPHQL_TS_CODEGEN_ prefix, e.g.
GRAPHQL_TS_CODEGEN_CONFIG=./codegen.yml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./graphql-codegen.yml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0, "number of generation workers (defaults to GOMAXPROCS)")

	viper.SetEnvPrefix("graphql_ts_codegen")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("concurrency", rootCmd.PersistentFlags().Lookup("concurrency"))
}

func newLogger() log.Logger {
	if !viper.GetBool("debug") {
		return log.Noop{}
	}
	zapLogger, err := zap.NewDevelopmentConfig().Build()
	if err != nil {
		panic(err)
	}
	return log.NewZapLogger(zapLogger, log.DebugLevel)
}

// resolveConfigPath returns the --config flag when set and otherwise
// discovers the config file in the working directory.
func resolveConfigPath(fsys afero.Fs) (string, error) {
	if path := viper.GetString("config"); path != "" {
		return path, nil
	}
	return gqlconfig.DiscoverConfig(fsys, ".")
}
