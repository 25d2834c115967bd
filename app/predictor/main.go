package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	spinhttp "github.com/spinframework/spin-go-sdk/v2/http"
	spinvars "github.com/spinframework/spin-go-sdk/v2/variables"

	"github.com/timgluz/zuckerspiegel/feature"
	"github.com/timgluz/zuckerspiegel/log"
	"github.com/timgluz/zuckerspiegel/middleware"
	"github.com/timgluz/zuckerspiegel/model"
	"github.com/timgluz/zuckerspiegel/response"
	"github.com/timgluz/zuckerspiegel/secret"
)

type predictorAppConfig struct {
	ModelStoreName string `json:"model_store_name"`
	Horizons       string `json:"horizons"` // comma-separated minutes, e.g. "30,60,90,120"
	APIKey         string `json:"api_key"`

	LogLevel string `json:"log_level"`
}

type predictorAppComponents struct {
	config predictorAppConfig

	registry    *model.Registry
	modelRepo   model.Repository
	secretStore secret.Store
	windows     feature.Windows

	logger *slog.Logger
}

func init() {
	spinhttp.Handle(func(w http.ResponseWriter, r *http.Request) {
		config, err := newPredictorAppConfigFromSpinVariables()
		if err != nil {
			response.RenderFatal(w, fmt.Errorf("failed to load predictor app configuration: %w", err))
			return
		}

		appComponents, err := initPredictorAppComponents(r, *config)
		if err != nil {
			fmt.Println("Error initializing predictor app components:", err)
			response.RenderFatal(w, fmt.Errorf("failed to initialize predictor app components"))
			return
		}
		defer appComponents.Close()

		if !appComponents.IsReady() {
			fmt.Println("Predictor app components are not ready")
			response.RenderFatal(w, fmt.Errorf("predictor app components are not ready"))
			return
		}

		logger := appComponents.logger
		logger.Info("Predictor app components initialized successfully", "horizons", appComponents.registry.Horizons())

		router := spinhttp.NewRouter()
		router.POST("/predict", middleware.BearerAuth(newPredictHandler(appComponents), appComponents.secretStore))
		router.GET("/status", newStatusHandler(appComponents))
		router.GET("/features", newFeatureSchemaHandler(appComponents))

		router.NotFound = response.NewNotFoundHandler(logger)
		router.ServeHTTP(w, r)
	})
}

func main() {}

type predictionResponse struct {
	Predictions map[int]float64 `json:"predictions"`
	Failures    map[int]string  `json:"failures,omitempty"`
}

func newPredictHandler(appComponents *predictorAppComponents) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		logger := appComponents.logger

		input, err := newPredictionInputFromRequest(r)
		if err != nil {
			response.RenderError(w, fmt.Errorf("invalid prediction input: %w", err), http.StatusBadRequest)
			return
		}

		if len(appComponents.registry.Horizons()) == 0 {
			response.RenderError(w, model.ErrModelUnavailable, http.StatusServiceUnavailable)
			return
		}

		predictions, failures := appComponents.registry.PredictAll(*input, appComponents.windows)
		logger.Info("Prediction served", "glucose", input.Glucose,
			"predicted", len(predictions), "failed", len(failures))

		response.RenderJSON(w, predictionResponse{Predictions: predictions, Failures: failures})
	}
}

func newStatusHandler(appComponents *predictorAppComponents) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		response.RenderJSON(w, response.NewCollectionResponse(appComponents.registry.Status()))
	}
}

func newFeatureSchemaHandler(appComponents *predictorAppComponents) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		response.RenderJSON(w, response.NewCollectionResponse(appComponents.windows.FeatureColumns()))
	}
}

func newPredictionInputFromRequest(r *http.Request) (*model.PredictionInput, error) {
	var input model.PredictionInput
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&input); err != nil {
		return nil, fmt.Errorf("failed to decode prediction input: %w", err)
	}
	r.Body.Close()

	if input.Glucose <= 0 {
		return nil, fmt.Errorf("glucose must be a positive value")
	}

	return &input, nil
}

func newPredictorAppConfigFromSpinVariables() (*predictorAppConfig, error) {
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

	return &predictorAppConfig{
		ModelStoreName: modelStoreName,
		Horizons:       horizons,
		APIKey:         apiKey,
		LogLevel:       logLevel,
	}, nil
}

func initPredictorAppComponents(r *http.Request, config predictorAppConfig) (*predictorAppComponents, error) {
	loggerOptions := &slog.HandlerOptions{
		Level: log.SlogLevelInfoFromString(config.LogLevel),
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, loggerOptions)).With("component", "predictor")
	logger.Info("Initializing predictor components")

	horizons, err := model.ParseHorizons(config.Horizons)
	if err != nil {
		return nil, fmt.Errorf("failed to parse horizons: %w", err)
	}

	modelRepo, err := model.NewSpinKVRepository(config.ModelStoreName, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model repository: %w", err)
	}

	registry := model.NewRegistry(r.Context(), modelRepo, horizons, logger)

	secretStore := secret.NewInMemoryStore()
	secretStore.Set(config.APIKey, config.APIKey)

	return &predictorAppComponents{
		config:      config,
		registry:    registry,
		modelRepo:   modelRepo,
		secretStore: secretStore,
		windows:     feature.DefaultWindows(),
		logger:      logger,
	}, nil
}

func (c *predictorAppComponents) IsReady() bool {
	if c.logger == nil {
		fmt.Println("Logger of predictor app components is not initialized")
		return false
	}

	if c.registry == nil {
		c.logger.Error("Model registry is not initialized")
		return false
	}

	if c.modelRepo == nil || !c.modelRepo.IsReady() {
		c.logger.Error("Model repository is not initialized or not ready")
		return false
	}

	if c.secretStore == nil {
		c.logger.Error("Secret store is not initialized")
		return false
	}

	return true
}

func (c *predictorAppComponents) Close() error {
	if c.modelRepo != nil {
		if err := c.modelRepo.Close(); err != nil {
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

	c.logger.Info("Predictor app components closed successfully")
	return nil
}
