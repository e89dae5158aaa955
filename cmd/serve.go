package cmd

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/ExpertsInside/Botty-McBotface/api/handlers"
	"github.com/ExpertsInside/Botty-McBotface/api/middleware"
	"github.com/ExpertsInside/Botty-McBotface/api/services"
	docs "github.com/ExpertsInside/Botty-McBotface/docs"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Botty McBotface Team Services API
// @version v1
// @description Provisions Microsoft 365 groups and teams through Microsoft Graph.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for handling API requests",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config and the application secret, set up logging
		commonSetUp()

		provisioner, provisioningDB, cleanup := newProvisioner(context.Background())
		defer cleanup()

		service := &services.Service{
			Config:      appCfg,
			DB:          provisioningDB,
			Directory:   graphClient,
			Tenants:     graphClient,
			Provisioner: provisioner,
		}

		// Create routes
		r := mux.NewRouter()

		api := r.PathPrefix(appCfg.BasePath).Subrouter()

		// Apply the middleware to the API routes
		api.Use(middleware.WithLogger)
		api.Use(middleware.JWTMiddleware)

		// Provisioning routes
		api.HandleFunc("/provisioning", handlers.CreateProvisioning(service)).Methods(http.MethodPost)
		api.HandleFunc("/provisioning", handlers.GetProvisioningRecords(service)).Methods(http.MethodGet)
		api.HandleFunc("/provisioning/{record-id}", handlers.GetProvisioningRecord(service)).Methods(http.MethodGet)

		// Directory routes
		api.HandleFunc("/groups", handlers.CreateGroup(service)).Methods(http.MethodPost)
		api.HandleFunc("/groups/{group-id}/team", handlers.CreateTeamFromGroup(service)).Methods(http.MethodPut)
		api.HandleFunc("/teams", handlers.CreateTeam(service)).Methods(http.MethodPost)
		api.HandleFunc("/users/{email}", handlers.GetUser(service)).Methods(http.MethodGet)
		api.HandleFunc("/tenants/{domain}", handlers.GetTenant(service)).Methods(http.MethodGet)

		// Docs
		docs.SwaggerInfo.Host = appCfg.Host
		docs.SwaggerInfo.BasePath = appCfg.BasePath
		if appCfg.DocsPath != "" {
			r.PathPrefix(appCfg.DocsPath).Handler(httpSwagger.Handler(
				httpSwagger.URL(path.Join(appCfg.DocsPath, "/doc.json")),
				httpSwagger.DeepLinking(true),
				httpSwagger.DocExpansion("none"),
				httpSwagger.DomID("swagger-ui"),
			)).Methods(http.MethodGet)
		}

		addr := fmt.Sprintf("%s:%d", host, port)
		log.Info().Msg(fmt.Sprintf("Server started at %s", addr))

		if err := http.ListenAndServe(addr, r); err != nil {
			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}
