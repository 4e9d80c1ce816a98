package cli

import (
	"errors"
	"fmt"
	"strings"

	"hirematch/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "matchctl"

// Actual version can be specified in build command.
var version = "unknown"

// runtime is shared by every subcommand of one root command.
type runtime struct {
	v   *viper.Viper
	log *zap.Logger
}

func (rt *runtime) logger() *zap.Logger {
	return logger.OrNop(rt.log)
}

// NewRootCmd builds the matchctl command tree with its own viper instance. Flags,
// MATCHCTL_* environment variables and an optional matchctl.yaml feed the same keys.
func NewRootCmd() *cobra.Command {
	rt := &runtime{v: viper.New()}
	var cfgFile string

	root := &cobra.Command{
		Use:           app,
		Short:         "matchctl scores candidates against job postings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := rt.readConfig(cfgFile); err != nil {
				return err
			}
			lg, err := logger.NewStderr(rt.v.GetBool("json"), rt.v.GetBool("debug"))
			if err != nil {
				return fmt.Errorf("creating a logger: %w", err)
			}
			rt.log = lg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "a config file (default is matchctl.yaml in current directory)")
	pf.BoolP("debug", "d", false, "verbose/debug output")
	pf.BoolP("json", "j", false, "json format for logging")
	_ = rt.v.BindPFlag("debug", pf.Lookup("debug"))
	_ = rt.v.BindPFlag("json", pf.Lookup("json"))

	rt.v.SetEnvPrefix("MATCHCTL")
	rt.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	rt.v.AutomaticEnv()

	root.AddCommand(
		newScoreCmd(rt),
		newRecommendCmd(rt),
		newMCPCmd(rt),
		newTokenCmd(rt),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (rt *runtime) readConfig(cfgFile string) error {
	if cfgFile != "" {
		rt.v.SetConfigFile(cfgFile)
	} else {
		rt.v.AddConfigPath(".")
		rt.v.SetConfigName(app)
		rt.v.SetConfigType("yaml")
	}

	if err := rt.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}
