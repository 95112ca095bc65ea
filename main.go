// File: estatedesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estatedesk/config"
	"estatedesk/database"
	listingRepoPkg "estatedesk/database/repository/listing"
	"estatedesk/handlers"
	"estatedesk/middleware"
	"estatedesk/routes"
	"estatedesk/services/draft"
	listingSvc "estatedesk/services/listing"
	"estatedesk/services/media"
	"estatedesk/services/wizard"
	"estatedesk/utils"
	"estatedesk/workers"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitDraftCache()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	stagingStore, err := media.NewStagingStore(config.AppConfig.StagingDir)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize staging store: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	listingRepo := listingRepoPkg.NewMongoListingRepo()

	// background worker and task client.
	workers.InitWorker(stagingStore, utils.GetCacheClient())
	taskClient := workers.NewClient()

	// services.
	draftStore := draft.NewRedisStore(
		utils.GetDraftCacheClient(),
		time.Duration(config.AppConfig.DraftTTLHours)*time.Hour,
	)

	wizardService := &wizard.DefaultWizardService{
		Drafts:   draftStore,
		Staging:  stagingStore,
		Storage:  cloudinaryStorageService,
		Listings: listingRepo,
		Tasks:    taskClient,
	}

	listingService := &listingSvc.DefaultListingService{
		Repo:  listingRepo,
		Cache: utils.GetCacheClient(),
	}

	listingHandler := handlers.NewListingHandler(listingService)
	wizardHandler := handlers.NewWizardHandler(wizardService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Listing dashboard endpoints.
		BrowseListingsHandler:      listingHandler.BrowseListingsHandler,
		GetListingByIDHandler:      listingHandler.GetListingByIDHandler,
		UpdateListingHandler:       listingHandler.UpdateListingHandler,
		UpdateListingStatusHandler: listingHandler.UpdateListingStatusHandler,
		DeleteListingHandler:       listingHandler.DeleteListingHandler,

		// Listing wizard endpoints.
		StartSessionHandler:   wizardHandler.StartSessionHandler,
		GetSessionHandler:     wizardHandler.GetSessionHandler,
		UpdateDraftHandler:    wizardHandler.UpdateDraftHandler,
		AdvanceHandler:        wizardHandler.AdvanceHandler,
		RetreatHandler:        wizardHandler.RetreatHandler,
		AttachFileHandler:     wizardHandler.AttachFileHandler,
		RemoveFileHandler:     wizardHandler.RemoveFileHandler,
		SetCoverHandler:       wizardHandler.SetCoverHandler,
		SubmitHandler:         wizardHandler.SubmitHandler,
		DiscardSessionHandler: wizardHandler.DiscardSessionHandler,

		// Form metadata endpoints.
		VocabulariesHandler: handlers.VocabulariesHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
