package cmd

import (
	"fmt"
	"os"
	"postindex/pkg/config"
	"postindex/pkg/logging"
	"postindex/pkg/services"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	appCfg  config.Config
	logger  *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "postindex",
	Short: "Lists the posts of a Hugo style content tree",
	Long: `postindex discovers content units laid out as <folder>/<slug>/<entry>,
reads their title and date front matter, and lists them newest first.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Init(cfgFile)
		if err != nil {
			return err
		}
		appCfg = cfg
		logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
}

// newLister wires the content source selected by cfg into a Lister.
func newLister(cfg config.Config) (*services.Lister, error) {
	var src services.Source
	if cfg.Bucket.Enabled() {
		bucket, err := services.NewBucketSource(services.BucketConfig{
			Endpoint:  cfg.Bucket.Endpoint,
			Region:    cfg.Bucket.Region,
			AccessKey: cfg.Bucket.AccessKey,
			SecretKey: cfg.Bucket.SecretKey,
			Bucket:    cfg.Bucket.Name,
			Prefix:    cfg.Bucket.Prefix,
			UseSSL:    cfg.Bucket.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		src = bucket
	} else {
		dir, err := services.NewDirSource(cfg.RepoPath)
		if err != nil {
			return nil, err
		}
		src = dir
	}

	return &services.Lister{
		Source:      src,
		Collection:  cfg.Collection,
		Concurrency: cfg.LoadConcurrency,
	}, nil
}
