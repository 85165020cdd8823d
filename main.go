package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/FilipeBHenriques/AlgoVizualizer/api"
	api_i "github.com/FilipeBHenriques/AlgoVizualizer/api/i"
	"github.com/FilipeBHenriques/AlgoVizualizer/api/identity"
	vizapi "github.com/FilipeBHenriques/AlgoVizualizer/api/visualizer"
	"github.com/FilipeBHenriques/AlgoVizualizer/config"
	logger "github.com/FilipeBHenriques/AlgoVizualizer/infrastruture/log"
	"github.com/FilipeBHenriques/AlgoVizualizer/infrastruture/repo"
	"github.com/FilipeBHenriques/AlgoVizualizer/infrastruture/scoreboard"
	"github.com/FilipeBHenriques/AlgoVizualizer/infrastruture/token"
	"github.com/FilipeBHenriques/AlgoVizualizer/maze"
	"github.com/FilipeBHenriques/AlgoVizualizer/service"
	"github.com/FilipeBHenriques/AlgoVizualizer/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// scoreboardTTLSeconds keeps strategy boards for a week of inactivity.
const scoreboardTTLSeconds = 7 * 24 * 60 * 60

// Global variables for dependencies
var (
	mongoClient          *mongo.Client
	redisClient          *redis.Client
	userRepo             i.UserRepo
	runScoreboard        i.Scoreboard
	visualizer           *service.MazeSessionManager
	visualizerController api_i.Controller
	jwtTokenizer         i.Tokenizer
	authService          i.Authenticator
	authController       api_i.Controller
	router               *api.Router
	appLogger            i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	addr := fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort)
	redisClient = redis.NewClient(&redis.Options{Addr: addr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initUserRepo(client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	appLogger.Info("User repository initialized")
}

func initScoreboard(client *redis.Client) {
	var err error
	runScoreboard, err = scoreboard.NewRedisScoreboard(client, scoreboardTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run scoreboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Run scoreboard initialized")
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSIONS", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager logger: %v", err))
		os.Exit(1)
	}

	visualizer, err = service.NewMazeSessionManager(&service.Config{
		FlatFactory:    maze.Generate,
		LayeredFactory: maze.GenerateLayered,
		Scoreboard:     runScoreboard,
		Logger:         sessionLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze session manager: %v", err))
		os.Exit(1)
	}

	appLogger.Info("Maze session manager initialized")
}

func initVisualizerController() {
	var err error
	visualizerController, err = vizapi.NewVisualizerController(visualizer, runScoreboard)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating visualizer controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Visualizer controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, visualizerController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initUserRepo(mongoClient)
	initScoreboard(redisClient)
	initSessionManager()
	initVisualizerController()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	err := router.Run()

	// Wind down active runs before exiting.
	visualizer.StopAll()
	if err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
