package cmd

import (
	"postindex/pkg/handlers"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the post listing as JSON over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		lister, err := newLister(appCfg)
		if err != nil {
			return err
		}

		addr := appCfg.AppAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		r := gin.Default()
		api := &handlers.API{Lister: lister, Logger: logger}
		api.Register(r)

		logger.Info("serving posts", "addr", addr, "collection", appCfg.Collection.Name, "pattern", appCfg.Collection.Pattern())
		return r.Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides APP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
