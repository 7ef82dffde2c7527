package main

import (
	"context"
	"errors"
	"log"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/redis/go-redis/v9"

	"github.com/sitegenio/sitegen-backend/config"
	"github.com/sitegenio/sitegen-backend/internal/auth"
	"github.com/sitegenio/sitegen-backend/internal/bootstrap"
	"github.com/sitegenio/sitegen-backend/internal/deployments"
	"github.com/sitegenio/sitegen-backend/internal/hosting"
	"github.com/sitegenio/sitegen-backend/internal/llm"
	"github.com/sitegenio/sitegen-backend/internal/storage/postgres"
)

const serviceName = "sitegen-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var redisClient *redis.Client
	if rc, err := bootstrap.OpenRedis(context.Background(), &cfg.Redis); err != nil {
		log.Printf("[warn] operation=startup message=redis unavailable, design candidates disabled: %v", err)
	} else {
		redisClient = rc
	}

	var aiClient llm.Client
	if c, err := llm.NewClient(&cfg.AI); err != nil {
		if errors.Is(err, llm.ErrNoCredential) {
			log.Println("[info] operation=startup message=no AI credential configured, using fallback generation")
		} else {
			log.Fatalf("ai client: %v", err)
		}
	} else {
		aiClient = c
	}

	hostingClient := hosting.NewClient(&cfg.Hosting)
	if !hostingClient.Configured() {
		log.Println("[warn] operation=startup message=no hosting token configured, deployment routes will fail")
	}

	var firebaseClient *firebaseauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		fc, err := auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
		firebaseClient = fc
	} else {
		log.Println("[warn] operation=startup message=firebase credentials not set, token verification disabled")
	}

	router, deployService := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:  serviceName,
		Version:      cfg.App.Version,
		DB:           db,
		Redis:        redisClient,
		AI:           aiClient,
		Hosting:      hostingClient,
		FirebaseAuth: firebaseClient,
	})

	if cfg.App.DeployRefreshCron != "" {
		refresher := deployments.NewRefresher(deployService)
		if err := refresher.Start(cfg.App.DeployRefreshCron); err != nil {
			log.Fatalf("deploy refresher: %v", err)
		}
		defer refresher.Stop()
	}

	addr := ":" + cfg.Server.Port
	log.Printf("[info] operation=startup message=listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
