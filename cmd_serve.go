package main

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"postcraft/api"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			p, cleanup, err := buildPipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			addr := ":" + cfg.Port
			r := api.NewRouter(p)

			log.Printf("🚀 Starting server on %s", addr)
			log.Println("📌 Endpoints:")
			log.Println("   GET  /              - Generator form")
			log.Println("   POST /generate      - Generate posts (form)")
			log.Println("   POST /download      - Download a post")
			log.Println("   POST /api/generate  - Generate posts (JSON)")
			log.Println("   GET  /api/health    - Health check")

			return http.ListenAndServe(addr, r)
		},
	}

	return cmd
}
