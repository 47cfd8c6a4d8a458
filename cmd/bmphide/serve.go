package main

import (
	"github.com/andresmejia3/bmphide/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	serveFlags struct {
		Addr         string
		MaxUploadMB  int64
		AllowOrigins []string
	}
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose encode and decode over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		serveConf := conf.Serve
		if cmd.Flags().Changed("addr") {
			serveConf.Addr = serveFlags.Addr
		}
		if cmd.Flags().Changed("max-upload-mb") {
			serveConf.MaxUploadMB = serveFlags.MaxUploadMB
		}
		if cmd.Flags().Changed("allow-origin") {
			serveConf.AllowOrigins = serveFlags.AllowOrigins
		}
		if serveConf.MaxUploadMB <= 0 {
			log.Fatal().Int64("max_upload_mb", serveConf.MaxUploadMB).Msg("max-upload-mb must be positive")
		}

		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}

		router := server.New(serveConf, log.Logger)
		log.Info().Str("addr", serveConf.Addr).Msg("Starting server")
		if err := router.Run(serveConf.Addr); err != nil {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	defaults := conf.Serve
	serveCmd.Flags().StringVarP(&serveFlags.Addr, "addr", "a", defaults.Addr, "Address to listen on")
	serveCmd.Flags().Int64Var(&serveFlags.MaxUploadMB, "max-upload-mb", defaults.MaxUploadMB, "Largest accepted upload, in MiB")
	serveCmd.Flags().StringSliceVar(&serveFlags.AllowOrigins, "allow-origin", nil, "CORS origin to allow (repeatable)")
}
