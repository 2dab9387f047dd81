package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/solacehr/leave-backend-go/internal/config"
	appHTTP "github.com/solacehr/leave-backend-go/internal/handler/http"
	"github.com/solacehr/leave-backend-go/internal/pkg/database"
	"github.com/solacehr/leave-backend-go/internal/pkg/jwt"
	"github.com/solacehr/leave-backend-go/internal/repository/postgresql"
	leaveService "github.com/solacehr/leave-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	requestService := leaveService.NewRequestService(txRunner, leaveRequestRepo, userRepo)
	conflictService := leaveService.NewConflictService(leaveRequestRepo, userRepo, teamRepo)

	leaveHandler := appHTTP.NewLeaveHandler(requestService, conflictService)

	router := appHTTP.NewRouter(jwtService, leaveHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
