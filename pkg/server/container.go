package server

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"

	"plantcare-advisor-api/internal/agent"
	"plantcare-advisor-api/internal/config"
	"plantcare-advisor-api/internal/repositories/dynamo"
	"plantcare-advisor-api/internal/services"
)

// Container holds all application dependencies. It is built once at cold
// start; the client handles inside are long-lived, stateless and safe for
// concurrent use across warm invocations.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Agent  *agent.Agent
}

// NewContainer creates the dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := logrus.New()
	if config.IsServerlessMode() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Bedrock.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg)
	bedrockClient := bedrockruntime.NewFromConfig(awsCfg)

	userRepo := dynamo.NewUserRepository(dynamoClient, cfg.Tables.UserData, cfg.Timeouts.Database, logger)
	plantRepo := dynamo.NewPlantRepository(dynamoClient, cfg.Tables.PlantDefinitions, cfg.Timeouts.Database, logger)
	weatherService := services.NewOpenMeteoService(cfg.Weather.BaseURL, cfg.Timeouts.Weather, logger)
	advisorService := services.NewBedrockAdvisor(bedrockClient, cfg.Bedrock.ModelID, cfg.Timeouts.Model,
		cfg.Bedrock.MaxAttempts, cfg.Bedrock.RatePerSec, logger)

	advisoryAgent := agent.New(userRepo, plantRepo, weatherService, advisorService,
		cfg.Timeouts.RequestDeadline, logger)

	return &Container{
		Config: cfg,
		Logger: logger,
		Agent:  advisoryAgent,
	}, nil
}
