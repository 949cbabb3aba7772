package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/josephlewis42/msh/core/config"
	"github.com/josephlewis42/msh/core/logger"
	"github.com/josephlewis42/msh/core/shell"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	noBanner bool
)

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "msh")
	}
	return "."
}

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(afero.NewOsFs(), cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// loadConfigOrDefault falls back to the built-in configuration when none has
// been initialized.
func loadConfigOrDefault() (*config.Configuration, error) {
	configuration, err := config.Load(afero.NewOsFs(), cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "msh",
	Short: "Minimal shell",
	Long: `An interactive command interpreter that runs one command per line.

Lines are split on whitespace. The tokens $? and $$ are replaced by the exit
status of the last command and the shell's process ID. cd, help and exit are
builtins, everything else is run as an external program.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfigOrDefault()
		if err != nil {
			return err
		}

		return runShell(configuration)
	},
}

func runShell(configuration *config.Configuration) error {
	events := logger.Discard()
	if configuration.EventLogEnabled() {
		logFd, err := configuration.OpenAppLog()
		if err != nil {
			return err
		}
		defer logFd.Close()
		events = logger.NewJsonLinesLogRecorder(logFd)
	}

	var reader shell.LineReader
	if isatty.IsTerminal(os.Stdin.Fd()) {
		terminal, err := shell.NewTerminalLineReader(shell.TerminalConfig{
			Stdin:        os.Stdin,
			Stdout:       os.Stdout,
			Stderr:       os.Stderr,
			HistoryFile:  configuration.HistoryPath(),
			HistoryLimit: configuration.HistoryLimit,
		})
		if err != nil {
			return err
		}
		defer terminal.Close()
		reader = terminal
	}

	if !noBanner && configuration.Banner != "" {
		fmt.Fprint(os.Stdout, configuration.Banner)
	}

	msh := shell.New(shell.Config{
		Reader: reader,
		Prompt: shell.NewPrompt(configuration.PromptMarker, configuration.Color),
		Events: events.NewSession(),
	})

	return msh.Run()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "config directory")
	rootCmd.Flags().BoolVar(&noBanner, "no-banner", false, "don't print the startup banner")
}
