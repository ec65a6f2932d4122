package main

import (
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"learnplatform/internal/infrastructure/repository"
	"learnplatform/pkg/procpb"
	"learnplatform/services/rpc-service/internal/config"
	grpc_handler "learnplatform/services/rpc-service/internal/transport/grpc"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db, nil)
	procServer := grpc_handler.NewProcedureServer(userRepo, courseRepo)

	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatalf("Failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpc_handler.APIKeyInterceptor(cfg.AnonKey)))
	procpb.RegisterProceduresServer(grpcServer, procServer)

	reflection.Register(grpcServer)

	log.Printf("Procedure service is running on port %s...", cfg.GRPCPort)

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Println("Shutting down server...")
	grpcServer.GracefulStop()
}
