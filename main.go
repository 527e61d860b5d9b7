package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	grpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"messaging-service/internal/config"
	"messaging-service/internal/conversation"
	"messaging-service/internal/db"
	grpcclient "messaging-service/internal/grpc"
	"messaging-service/internal/handlers"
	"messaging-service/internal/identity"
	"messaging-service/internal/logger"
	"messaging-service/internal/middleware"
	"messaging-service/internal/observability"
	"messaging-service/internal/rabbitmq"
	"messaging-service/internal/repositories"
	"messaging-service/internal/telemetry"
	"messaging-service/internal/ws"
	pb "messaging-service/pb/accounts"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	tracerShutdown, err := observability.InitTracing(context.Background(), "messaging-service", cfg.OTLPEndpoint, cfg.Environment, zlog)
	if err != nil {
		zlog.Fatal("failed to init tracing", zap.Error(err))
	}
	if tracerShutdown != nil {
		defer func() {
			if err := tracerShutdown(context.Background()); err != nil {
				zlog.Error("tracer shutdown", zap.Error(err))
			}
		}()
	}

	database, err := db.Connect(cfg.DBDSN, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to db", zap.Error(err))
	}
	defer database.Close()

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, zlog)
	defer publisher.Close()
	emitter := telemetry.NewEmitter(publisher, "messaging", cfg.Environment, zlog)

	var (
		verifier  identity.Verifier
		directory conversation.Directory
	)
	if cfg.AccountsGRPCAddr != "" {
		conn, err := grpc.Dial(cfg.AccountsGRPCAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		)
		if err != nil {
			zlog.Fatal("failed to connect to accounts grpc", zap.Error(err))
		}
		defer conn.Close()
		accounts := grpcclient.NewAccountsClient(pb.NewAccountsServiceClient(conn))
		verifier, directory = accounts, accounts
	} else {
		zlog.Warn("no accounts endpoint configured, using local jwt verification")
		verifier = identity.NewLocalVerifier(cfg.JWTSecret)
		directory = identity.LocalDirectory{}
	}

	friendshipRepo := repositories.NewFriendshipRepo(database)
	ledgerRepo := repositories.NewLedgerRepo(database)

	hub := ws.NewHub(zlog)
	typing := ws.NewTypingCoordinator(hub, cfg.TypingTTL, zlog)
	receipts := ws.NewReadReceiptNotifier(hub, zlog)
	pusher := ws.NewPusher(hub, receipts, emitter)

	conversations := conversation.NewService(friendshipRepo, ledgerRepo, directory, hub, pusher, emitter, zlog)

	gateway := ws.NewGateway(hub, typing, verifier, directory, conversations, emitter, zlog)
	conversationHandler := handlers.NewConversationHandler(conversations, zlog)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("messaging-service"))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.PingContext(pingCtx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", gateway.Handle)

	authMiddleware := middleware.AuthMiddleware(verifier)

	router.POST("/friends/:username/messages", authMiddleware, conversationHandler.SendMessage)
	router.GET("/friends/:username/conversation", authMiddleware, conversationHandler.GetConversation)
	router.GET("/friends/:username/heatmap", authMiddleware, conversationHandler.GetHeatMap)
	router.GET("/friends/:username/stats", authMiddleware, conversationHandler.GetStats)
	router.POST("/friends/:username/read", authMiddleware, conversationHandler.MarkRead)
	router.GET("/conversations", authMiddleware, conversationHandler.ListConversations)
	router.GET("/streaks", authMiddleware, conversationHandler.ListStreaks)

	handlers.RegisterDebugRoutes(router.Group("", authMiddleware), conversationHandler, emitter, cfg.DebugEndpoints)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zlog.Info("messaging service listening",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("events", rabbitmq.PublisherMode(publisher)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
}
