package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deepinsight/backend/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultServer = "http://localhost:8080"

// app carries the configuration shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	return newRootCmd(version, commit, date).Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "insightctl",
		Short: "Manage the DeepInsight site from the terminal",
		Long: `insightctl talks to the DeepInsight API server.

Public commands browse posts and submit inquiries. Admin commands (posts create,
inquiries list, upload, ...) need a session from 'insightctl login', which is
kept in ~/.insightctl/session.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./insightctl.yaml)")
	pf.String("server", defaultServer, "API server address")
	pf.StringP("output", "o", "table", "output format: table, json or yaml")
	pf.String("session-file", "", "session file (default is ~/.insightctl/session.json)")
	pf.Duration("timeout", client.DefaultTimeout, "request timeout")
	pf.BoolP("verbose", "v", false, "log request failures to stderr")
	for _, name := range []string{"server", "output", "session-file", "timeout", "verbose"} {
		_ = a.v.BindPFlag(name, pf.Lookup(name))
	}

	cmd.AddCommand(newVersionCmd(version, commit, date))
	cmd.AddCommand(newLoginCmd(a))
	cmd.AddCommand(newLogoutCmd(a))
	cmd.AddCommand(newWhoamiCmd(a))
	cmd.AddCommand(newPostsCmd(a))
	cmd.AddCommand(newInquiriesCmd(a))
	cmd.AddCommand(newSubmitCmd(a))
	cmd.AddCommand(newUploadCmd(a))
	cmd.AddCommand(newCapabilitiesCmd(a))

	return cmd
}

func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("insightctl")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		a.v.AddConfigPath("$HOME/.insightctl")
	}

	a.v.SetEnvPrefix("INSIGHT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	// 設定ファイルは任意。明示的に指定された場合のみエラーにする
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	switch out := a.v.GetString("output"); out {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", out)
	}
	return nil
}

func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "insightctl %s (commit %s, built %s)\n", version, commit, date)
			return nil
		},
	}
}
