package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/albertb/barcode/internal"
	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "barcode",
		Short: "Render barcode strip charts",
		Long: heredoc.Doc(`
			barcode renders one-dimensional strip charts, one tick per record,
			into an HTML page with an SVG per chart.
		`),
		SilenceUsage: true,
	}
	cmd.AddCommand(newRenderCmd(), newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), internal.Version)
		},
	}
}

func newRenderCmd() *cobra.Command {
	var (
		configPath string
		dataPath   string
		logLevel   string
		options    internal.RunOptions
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the charts of a page config",
		Example: heredoc.Doc(`
			# Write the page to stdout
			$ barcode render --config charts.yaml

			# Preview a chart with fake data in the browser
			$ barcode render --fake --dev --addr :9999

			# Take a screenshot with a local Chrome
			$ barcode render --config charts.yaml --data records.json --img chart.png
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
				Level:           level,
				Prefix:          "barcode",
				ReportTimestamp: true,
			})

			config, err := readConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return fmt.Errorf("failed to read config file: %w", err)
			}

			if dataPath != "" {
				f, err := os.Open(dataPath)
				if err != nil {
					return fmt.Errorf("failed to open data file: %w", err)
				}
				defer f.Close()
				if options.Data, err = internal.ReadRecords(f); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			options.Out = cmd.OutOrStdout()
			return internal.Run(ctx, config, options, logger)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath(), "path to the config file")
	cmd.Flags().StringVar(&dataPath, "data", "", "JSON records for the first chart")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	cmd.Flags().BoolVar(&options.Fake, "fake", false, "generate fake records for charts without data")
	cmd.Flags().BoolVar(&options.Dev, "dev", false, "keep a webserver running to preview the page")
	cmd.Flags().StringVar(&options.Addr, "addr", ":9999", "the address the webserver listens on in dev mode")
	cmd.Flags().StringVar(&options.HTML, "html", "", "the path to save the page to")
	cmd.Flags().StringVar(&options.Img, "img", "", "the path to save a PNG screenshot to")
	return cmd
}

func defaultConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "barcode", "config.yaml")
}

// readConfig reads the config file. A missing default config file is not an
// error; the page then holds a single chart with default options.
func readConfig(path string, explicit bool) (internal.Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) && !explicit {
		return internal.ReadConfig(strings.NewReader(""))
	}
	if err != nil {
		return internal.Config{}, err
	}
	defer f.Close()
	return internal.ReadConfig(f)
}
