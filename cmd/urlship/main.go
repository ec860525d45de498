package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/spcloud/urlship/internal/cliconfig"
)

const helpDescription = `
Deliver a loadout's files to its linked device as presigned download URLs.

Highlights:
  - Resolves the device linked to a user before touching storage.
  - Lists every object of the loadout and signs a time-limited GET URL for each.
  - Packs URLs into JSON arrays that always fit the device's MQTT buffer.
  - Publishes batches in order; a failed batch stops the sequence.
  - Runs from a terminal, behind API Gateway on Lambda, or as an HTTP server.
`

var exampleUsage = strings.TrimSpace(`
  urlship publish --user-id 2f1c... --loadout-id starter
  urlship lambda --handler presigned-urls
  AWS_LAMBDA_RUNTIME_API=... URLSHIP_LAMBDA_HANDLER=device-link urlship
  urlship serve --listen :8080 --config $HOME/.urlship/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries the configuration shared by every subcommand.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	log     zerolog.Logger
}

// load resolves configuration: file, then env, then flags.
func (c *cli) load(cmd *cobra.Command) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	c.log = cliconfig.NewLogger(os.Stderr, c.cfg.LogLevel)
	return nil
}

func main() {
	c := &cli{
		cfg: cliconfig.DefaultConfig(),
		log: cliconfig.Logger(),
	}

	root := &cobra.Command{
		Use:           "urlship",
		Short:         "Publish presigned download URLs to devices over MQTT",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		// A provided.al2 bootstrap runs the binary without arguments.
		RunE: func(cmd *cobra.Command, args []string) error {
			if name, ok := lambdaHandlerFromEnv(os.Getenv); ok {
				return runLambda(c, cmd, name)
			}
			return cmd.Help()
		},
	}

	cfg := &c.cfg
	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.urlship/config.toml)")
	pf.StringVar(&cfg.Bucket, "bucket", cfg.Bucket, "bucket holding loadout files")
	pf.StringVar(&cfg.Region, "region", cfg.Region, "AWS region")
	pf.StringVar(&cfg.IoTEndpoint, "iot-endpoint", cfg.IoTEndpoint, "AWS IoT data endpoint")
	pf.StringVar(&cfg.DeviceAPIURL, "device-api-url", cfg.DeviceAPIURL, "device link lookup URL")
	pf.StringVar(&cfg.LinkTable, "link-table", cfg.LinkTable, "DynamoDB table of user/device links")
	pf.StringVar(&cfg.DeviceIndex, "device-index", cfg.DeviceIndex, "secondary index on deviceId")
	pf.StringVar(&cfg.KeyRoot, "key-root", cfg.KeyRoot, "object key root above {user}/{loadout}/")
	pf.StringVar(&cfg.TopicPrefix, "topic-prefix", cfg.TopicPrefix, "MQTT topic prefix; the device id is appended")
	pf.DurationVar(&cfg.URLExpiry, "expiry", cfg.URLExpiry, "presigned URL lifetime")
	pf.IntVar(&cfg.MaxPacketSize, "max-packet-size", cfg.MaxPacketSize, "device MQTT buffer size in bytes")
	pf.Float64Var(&cfg.SafetyMarginPercent, "safety-margin", cfg.SafetyMarginPercent, "percent of the packet reserved for MQTT framing")
	pf.IntVar(&cfg.ListPageSize, "list-page-size", cfg.ListPageSize, "objects per list page (0 uses the service default)")
	pf.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "device lookup HTTP timeout")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		newPublishCmd(c),
		newLambdaCmd(c),
		newServeCmd(c),
	)

	if err := root.Execute(); err != nil {
		c.log.Error().Err(err).Msg("urlship")
		os.Exit(1)
	}
}
