package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quantmind-br/ucmpurge/internal/app"
	"github.com/quantmind-br/ucmpurge/internal/config"
	"github.com/quantmind-br/ucmpurge/internal/credentials"
	"github.com/quantmind-br/ucmpurge/internal/domain"
	"github.com/quantmind-br/ucmpurge/internal/ucm"
	"github.com/quantmind-br/ucmpurge/internal/utils"
	"github.com/quantmind-br/ucmpurge/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	err := rootCmd.Execute()
	os.Exit(reportError(err, os.Stderr))
}

// reportError prints err, followed by the usage line for usage errors, and
// returns the process exit code
func reportError(err error, w io.Writer) int {
	if err == nil {
		return domain.ExitOK
	}

	fmt.Fprintln(w, err)
	if domain.IsUsage(err) {
		fmt.Fprintln(w, app.UsageLine)
	}
	return domain.ExitCode(err)
}

var rootCmd = &cobra.Command{
	Use:   "ucmpurge <connectionPropertiesFile> <manifestFile> <manifestDocId>",
	Short: "Delete the documents listed in a manifest from a UCM server",
	Long: `ucmpurge reads UCM connection properties and a MANIFEST.MF file, deletes
every listed document by DocID and finally deletes the manifest document itself.

The run stops at the first request that fails or is not answered with status 200.
The manifest document is only deleted when every listed document was deleted.`,
	Version:       version.Short(),
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.ucmpurge/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format (pretty or json)")

	// Transport flags
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().String("proxy", "", "Proxy URL for UCM requests")
	rootCmd.PersistentFlags().Bool("insecure", false, "Skip TLS certificate verification")
	rootCmd.PersistentFlags().String("user-agent", "", "Custom User-Agent")

	// Output flags
	rootCmd.Flags().Bool("dry-run", false, "Parse inputs and list the deletions without connecting")
	rootCmd.Flags().String("report", "", "Write a run report (.json, .yaml or .yml)")
	rootCmd.Flags().Bool("progress", false, "Show a progress bar on stderr")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("ucm.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("ucm.proxy", rootCmd.PersistentFlags().Lookup("proxy"))
	_ = viper.BindPFlag("ucm.insecure_skip_verify", rootCmd.PersistentFlags().Lookup("insecure"))
	_ = viper.BindPFlag("ucm.user_agent", rootCmd.PersistentFlags().Lookup("user-agent"))
	_ = viper.BindPFlag("output.dry_run", rootCmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("output.report", rootCmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("output.progress", rootCmd.Flags().Lookup("progress"))

	// Unknown or malformed flags are usage errors like a wrong argument count
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return domain.NewUsageError("Error: %v", err)
	})

	// Add subcommands
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(utils.ExpandPath(cfgFile))
	}
}

func newLogger(cfg *config.Config) *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})
}

func run(cmd *cobra.Command, args []string) error {
	// Arguments are checked before config so a bad invocation never touches disk
	if err := app.ValidateArgs(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log = newLogger(cfg)

	// Create context with cancellation
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Interrupted, aborting the current request...")
			cancel()
		case <-ctx.Done():
		}
	}()

	runner, err := app.NewRunner(app.RunnerOptions{
		Config:         cfg,
		Logger:         log,
		ProgressOutput: cmd.ErrOrStderr(),
		Verbose:        verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}
	defer runner.Close()

	log.Info().Str("version", version.Short()).Msg("Running ucmpurge")
	return runner.Run(ctx, args)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [connectionPropertiesFile]",
	Short: "Check configuration and UCM connectivity",
	Long: `Verifies that the configuration loads and, when a connection properties
file is given, that it parses and its credentials are accepted by the server.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking ucmpurge setup...")
		allPassed := true

		// Check 1: Config file
		fmt.Fprint(out, "  Config file: ")
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(out, "FAILED (%v)\n", err)
			return fmt.Errorf("config check failed: %w", err)
		}
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(out, "OK (%s)\n", used)
		} else {
			fmt.Fprintf(out, "OK (defaults, %s not found)\n", config.ConfigFilePath())
		}

		// Check 2: Config directory
		fmt.Fprint(out, "  Config directory: ")
		if checkDir(config.ConfigDir()) {
			fmt.Fprintf(out, "OK (%s)\n", config.ConfigDir())
		} else {
			fmt.Fprintf(out, "WARN (%s not present, defaults in use)\n", config.ConfigDir())
		}

		if len(args) == 0 {
			fmt.Fprintln(out, "  Connection: SKIPPED (no connection properties file given)")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "All critical checks passed!")
			return nil
		}

		// Check 3: Connection properties file
		fmt.Fprint(out, "  Connection properties: ")
		info, err := credentials.Load(args[0])
		if err != nil {
			fmt.Fprintf(out, "FAILED (%v)\n", err)
			allPassed = false
		} else {
			fmt.Fprintf(out, "OK (%s)\n", info)
		}

		// Check 4: Connection
		if allPassed {
			fmt.Fprint(out, "  UCM connection: ")
			if err := checkConnection(cmd.Context(), cfg, info); err != nil {
				fmt.Fprintf(out, "FAILED (%v)\n", err)
				allPassed = false
			} else {
				fmt.Fprintln(out, "OK")
			}
		}

		fmt.Fprintln(out)
		if !allPassed {
			fmt.Fprintln(out, "Some checks failed. Please resolve the issues above.")
			return fmt.Errorf("doctor: some checks failed")
		}
		fmt.Fprintln(out, "All critical checks passed!")
		return nil
	},
}

// checkConnection opens and closes a session with PING_SERVER
func checkConnection(ctx context.Context, cfg *config.Config, info domain.ConnectionInfo) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.UCM.Timeout+5*time.Second)
	defer cancel()

	client, err := ucm.NewClient(app.ClientOptionsFromConfig(cfg, utils.NewNopLogger()))
	if err != nil {
		return err
	}
	defer client.Close()

	session, err := client.Connect(ctx, info)
	if err != nil {
		return err
	}
	return session.Close()
}

// checkDir reports whether path exists and is a directory
func checkDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}
