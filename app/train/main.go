package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	spinhttp "github.com/spinframework/spin-go-sdk/v2/http"
	spinvars "github.com/spinframework/spin-go-sdk/v2/variables"

	"github.com/timgluz/zuckerspiegel/log"
	"github.com/timgluz/zuckerspiegel/measurement"
	"github.com/timgluz/zuckerspiegel/middleware"
	"github.com/timgluz/zuckerspiegel/model"
	"github.com/timgluz/zuckerspiegel/response"
	"github.com/timgluz/zuckerspiegel/secret"
	"github.com/timgluz/zuckerspiegel/source"
	"github.com/timgluz/zuckerspiegel/task"
)

const defaultTrainingPeriod = "P30D"

type trainAppConfig struct {
	MeasurementDBName string `json:"measurement_db_name"`
	ModelStoreName    string `json:"model_store_name"`
	Horizons          string `json:"horizons"`
	APIKey            string `json:"api_key"`

	LogLevel string `json:"log_level"`
}

type trainAppComponents struct {
	config trainAppConfig

	measurementRepository measurement.Repository
	modelRepository       model.Repository
	horizons              []int
	secretStore           secret.Store

	logger *slog.Logger
}

func init() {
	spinhttp.Handle(func(w http.ResponseWriter, r *http.Request) {
		config, err := newTrainAppConfigFromSpinVariables()
		if err != nil {
			response.RenderFatal(w, fmt.Errorf("failed to load train app configuration: %w", err))
			return
		}

		appComponents, err := initTrainAppComponents(*config)
		if err != nil {
			fmt.Println("Error initializing train app components:", err)
			response.RenderFatal(w, fmt.Errorf("failed to initialize train app components"))
			return
		}
		defer appComponents.Close()

		if !appComponents.IsReady() {
			fmt.Println("Train app components are not ready")
			response.RenderFatal(w, fmt.Errorf("train app components are not ready"))
			return
		}

		logger := appComponents.logger
		logger.Info("Train app components initialized successfully", "MeasurementDBName", config.MeasurementDBName)

		router := spinhttp.NewRouter()
		router.POST("/tasks/trainModels", middleware.BearerAuth(newTrainModelsHandler(appComponents), appComponents.secretStore))

		router.NotFound = response.NewNotFoundHandler(logger)
		router.ServeHTTP(w, r)
	})
}

func main() {}

func newTrainModelsHandler(appComponents *trainAppComponents) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		ctx := r.Context()
		logger := appComponents.logger

		periodStr := r.URL.Query().Get("period")
		if periodStr == "" {
			periodStr = defaultTrainingPeriod
		}

		trainingPeriod, err := measurement.NewFromISO8601Duration(periodStr)
		if err != nil {
			logger.Error("Invalid training period format", "period", periodStr, "error", err)
			response.RenderError(w, fmt.Errorf("invalid training period"), http.StatusBadRequest)
			return
		}

		logger.Info("Starting model training", "period", trainingPeriod.String(), "horizons", appComponents.horizons)

		fetcher := source.NewFetcher(appComponents.measurementRepository, logger)
		registry := model.NewRegistry(ctx, appComponents.modelRepository, appComponents.horizons, logger)

		trainingConfig := task.DefaultTrainingConfig()
		trainingConfig.Horizons = appComponents.horizons

		trainer := task.NewModelTrainer(fetcher, registry, trainingConfig, logger)
		report, err := trainer.Run(ctx, *trainingPeriod)
		if err != nil {
			logger.Error("Training run failed", "error", err)
			response.RenderError(w, fmt.Errorf("training run failed: %w", err), http.StatusInternalServerError)
			return
		}

		response.RenderJSON(w, response.NewPostResponse(true, "model training completed", report))
	}
}

func newTrainAppConfigFromSpinVariables() (*trainAppConfig, error) {
	measurementDBName, err := spinvars.Get("measurement_db_name")
	if err != nil {
		return nil, fmt.Errorf("failed to get measurement_db_name: %w", err)
	}

	modelStoreName, err := spinvars.Get("model_store_name")
	if err != nil {
		return nil, fmt.Errorf("failed to get model_store_name: %w", err)
	}

	horizons, err := spinvars.Get("horizons")
	if err != nil {
		return nil, fmt.Errorf("failed to get horizons: %w", err)
	}

	apiKey, err := spinvars.Get("api_key")
	if err != nil {
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	logLevel, err := spinvars.Get("log_level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log_level: %w", err)
	}

	return &trainAppConfig{
		MeasurementDBName: measurementDBName,
		ModelStoreName:    modelStoreName,
		Horizons:          horizons,
		APIKey:            apiKey,
		LogLevel:          logLevel,
	}, nil
}

func initTrainAppComponents(config trainAppConfig) (*trainAppComponents, error) {
	loggerOptions := &slog.HandlerOptions{
		Level: log.SlogLevelInfoFromString(config.LogLevel),
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, loggerOptions)).With("component", "train")
	logger.Info("Initializing train components")

	horizons, err := model.ParseHorizons(config.Horizons)
	if err != nil {
		return nil, fmt.Errorf("failed to parse horizons: %w", err)
	}

	measurementDB, err := measurement.NewSpinSqliteDB(config.MeasurementDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite DB: %w", err)
	}

	measurementRepository, err := measurement.NewSqlRepository(measurementDB, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create measurement repository: %w", err)
	}

	modelRepository, err := model.NewSpinKVRepository(config.ModelStoreName, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model repository: %w", err)
	}

	secretStore := secret.NewInMemoryStore()
	secretStore.Set(config.APIKey, config.APIKey)

	return &trainAppComponents{
		config:                config,
		measurementRepository: measurementRepository,
		modelRepository:       modelRepository,
		horizons:              horizons,
		secretStore:           secretStore,
		logger:                logger,
	}, nil
}

func (c *trainAppComponents) IsReady() bool {
	if c.logger == nil {
		fmt.Println("Logger of train app components is not initialized")
		return false
	}

	if c.measurementRepository == nil || !c.measurementRepository.IsReady() {
		c.logger.Error("Measurement repository is not initialized or not ready")
		return false
	}

	if c.modelRepository == nil || !c.modelRepository.IsReady() {
		c.logger.Error("Model repository is not initialized or not ready")
		return false
	}

	if len(c.horizons) == 0 {
		c.logger.Error("No training horizons configured")
		return false
	}

	if c.secretStore == nil {
		c.logger.Error("Secret store is not initialized")
		return false
	}

	return true
}

func (c *trainAppComponents) Close() error {
	if c.measurementRepository != nil {
		if err := c.measurementRepository.Close(); err != nil {
			c.logger.Error("Failed to close measurement repository", "error", err)
			return err
		}
	}

	if c.modelRepository != nil {
		if err := c.modelRepository.Close(); err != nil {
			c.logger.Error("Failed to close model repository", "error", err)
			return err
		}
	}

	if c.secretStore != nil {
		if err := c.secretStore.Close(); err != nil {
			c.logger.Error("Failed to close secret store", "error", err)
			return err
		}
	}

	c.logger.Info("Train app components closed successfully")
	return nil
}
