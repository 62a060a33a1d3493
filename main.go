package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"

	"LMS-backend/internal/library_mgmt/books"
	"LMS-backend/internal/library_mgmt/loans"
	"LMS-backend/internal/library_mgmt/reservations"
	"LMS-backend/internal/membership/members"
	"LMS-backend/internal/membership/staff"
	"LMS-backend/internal/platform/auth"
	"LMS-backend/internal/platform/db"
)

func main() {
	cfg, err := db.LoadConfig("config/config.yaml")
	if err != nil {
		panic(err)
	}

	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if mode != "dev" && mode != "release" {
		log.Fatal("config mode must be dev or release")
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS is only needed while the frontend runs on its own port.
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	secret := []byte(cfg.Auth.JWTSecret)
	sessionTTL := time.Duration(cfg.Auth.SessionTTLHours) * time.Hour

	authStore := auth.NewStore(conn)
	authSvc := auth.NewService(authStore, secret, sessionTTL)
	authn := auth.RequireAuth(secret, authStore)
	staffOnly := auth.RequireStaff()

	loanSvc := loans.NewService(conn)

	api := r.Group("/api/v1")
	auth.RegisterRoutes(api, authSvc, authn)
	books.RegisterRoutes(api, books.NewService(conn), authn, staffOnly)
	loans.RegisterRoutes(api, loanSvc, authn, staffOnly)
	reservations.RegisterRoutes(api, reservations.NewService(conn, loanSvc), authn, staffOnly)
	members.RegisterRoutes(api, members.NewService(conn), authn, staffOnly)
	staff.RegisterRoutes(api, staff.NewService(conn), authn, staffOnly)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		var err error
		if cfg.Certificate.Cert != "" && cfg.Certificate.Key != "" {
			log.Printf("[INFO] listening on https://%s", cfg.Addr)
			err = srv.ListenAndServeTLS(cfg.Certificate.Cert, cfg.Certificate.Key)
		} else {
			log.Printf("[INFO] listening on http://%s", cfg.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
