package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	spinhttp "github.com/spinframework/spin-go-sdk/v2/http"
	spinvars "github.com/spinframework/spin-go-sdk/v2/variables"

	"github.com/timgluz/zuckerspiegel/log"
	"github.com/timgluz/zuckerspiegel/measurement"
	"github.com/timgluz/zuckerspiegel/middleware"
	"github.com/timgluz/zuckerspiegel/response"
	"github.com/timgluz/zuckerspiegel/secret"
	"github.com/timgluz/zuckerspiegel/source"
)

type ingestAppConfig struct {
	MeasurementDBName string `json:"measurement_db_name"`
	APIKey            string `json:"api_key"`

	LogLevel string `json:"log_level"`
}

type ingestAppComponents struct {
	config ingestAppConfig

	measurementRepository measurement.Repository
	secretStore           secret.Store

	logger *slog.Logger
}

func init() {
	spinhttp.Handle(func(w http.ResponseWriter, r *http.Request) {
		config, err := newIngestAppConfigFromSpinVariables()
		if err != nil {
			response.RenderFatal(w, fmt.Errorf("failed to load ingest app configuration: %w", err))
			return
		}

		appComponents, err := initIngestAppComponents(*config)
		if err != nil {
			fmt.Println("Error initializing ingest app components:", err)
			response.RenderFatal(w, fmt.Errorf("failed to initialize ingest app components"))
			return
		}
		defer appComponents.Close()

		if !appComponents.IsReady() {
			fmt.Println("Ingest app components are not ready")
			response.RenderFatal(w, fmt.Errorf("ingest app components are not ready"))
			return
		}

		logger := appComponents.logger
		logger.Info("Ingest app components initialized successfully", "MeasurementDBName", config.MeasurementDBName)

		router := spinhttp.NewRouter()
		router.GET("/sources", newSourceListHandler(appComponents))
		router.POST("/sources/:name", middleware.BearerAuth(newSourceIngestHandler(appComponents), appComponents.secretStore))
		router.GET("/sources/:name", middleware.BearerAuth(newGetSourceTimeseriesHandler(appComponents), appComponents.secretStore))

		router.NotFound = response.NewNotFoundHandler(logger)
		router.ServeHTTP(w, r)
	})
}

func main() {}

func newSourceListHandler(appComponents *ingestAppComponents) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		response.RenderJSON(w, response.NewCollectionResponse(source.Catalog()))
	}
}

func newSourceIngestHandler(appComponents *ingestAppComponents) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		logger := appComponents.logger

		desc, column, err := resolveSourceColumn(r, params)
		if err != nil {
			response.RenderError(w, err, http.StatusBadRequest)
			return
		}

		timeseries, err := newTimeseriesFromRequest(r, desc, column)
		if err != nil {
			response.RenderError(w, fmt.Errorf("failed to create timeseries from request: %w", err), http.StatusBadRequest)
			return
		}

		logger.Debug("Saving timeseries for source", "source", desc.Name, "column", column,
			"samples", len(timeseries.Samples))
		if err := appComponents.measurementRepository.AddTimeseries(r.Context(), timeseries); err != nil {
			logger.Error("Failed to add timeseries", "error", err)
			response.RenderError(w, fmt.Errorf("failed to add timeseries: %w", err), http.StatusInternalServerError)
			return
		}

		logger.Info("Timeseries added successfully", "source", desc.Name, "column", column)
		response.RenderJSON(w, response.NewPostResponse(true, "samples stored for source: "+desc.Name, nil))
	}
}

func newGetSourceTimeseriesHandler(appComponents *ingestAppComponents) spinhttp.RouterHandle {
	return func(w http.ResponseWriter, r *http.Request, params spinhttp.Params) {
		logger := appComponents.logger

		desc, column, err := resolveSourceColumn(r, params)
		if err != nil {
			response.RenderError(w, err, http.StatusBadRequest)
			return
		}

		period, err := getPeriodFromRequest(r)
		if err != nil {
			response.RenderError(w, fmt.Errorf("invalid period: %w", err), http.StatusBadRequest)
			return
		}

		name := desc.MeasurementName(column)
		timeseries, err := appComponents.measurementRepository.GetTimeseries(r.Context(), name, *period)
		if err != nil {
			logger.Error("Failed to get timeseries", "source", desc.Name, "error", err)
			response.RenderError(w, fmt.Errorf("failed to get timeseries: %w", err), http.StatusInternalServerError)
			return
		}

		if timeseries == nil {
			timeseries = &measurement.Timeseries{Name: name, Start: period.Start, End: period.End}
		}

		logger.Info("Timeseries retrieved successfully", "source", desc.Name, "column", column)
		response.RenderJSON(w, timeseries)
	}
}

func resolveSourceColumn(r *http.Request, params spinhttp.Params) (source.Descriptor, string, error) {
	sourceName := params.ByName("name")
	if sourceName == "" {
		return source.Descriptor{}, "", fmt.Errorf("source name is required")
	}

	desc, ok := source.FindDescriptor(sourceName)
	if !ok {
		return source.Descriptor{}, "", fmt.Errorf("unknown source: %s", sourceName)
	}

	column := r.URL.Query().Get("column")
	if column == "" {
		if len(desc.Columns) > 1 {
			return source.Descriptor{}, "", fmt.Errorf("source %s has multiple columns, column parameter is required", desc.Name)
		}
		column = desc.Columns[0]
	}

	if !hasColumn(desc, column) {
		return source.Descriptor{}, "", fmt.Errorf("source %s has no column %s", desc.Name, column)
	}

	return desc, column, nil
}

func hasColumn(desc source.Descriptor, column string) bool {
	for _, c := range desc.Columns {
		if c == column {
			return true
		}
	}
	return false
}

func newTimeseriesFromRequest(r *http.Request, desc source.Descriptor, column string) (*measurement.Timeseries, error) {
	var timeseries measurement.Timeseries
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&timeseries); err != nil {
		return nil, fmt.Errorf("failed to decode timeseries from request: %w", err)
	}
	r.Body.Close()

	if len(timeseries.Samples) == 0 {
		return nil, fmt.Errorf("timeseries must carry at least one sample")
	}

	// daily metrics are attributed to a calendar date, so their samples
	// are normalized to midnight UTC before storage
	if desc.Kind == source.KindDaily {
		for i := range timeseries.Samples {
			date := measurement.DateOfEpoch(timeseries.Samples[i].Timestamp)
			timeseries.Samples[i].Timestamp = date.Epoch()
		}
	}

	name := desc.MeasurementName(column)
	timeseries.Name = name
	if timeseries.Measurement == nil {
		timeseries.Measurement = &measurement.Measurement{
			Name: name,
			Unit: desc.Unit,
		}
	}

	return &timeseries, nil
}

func getPeriodFromRequest(r *http.Request) (*measurement.Period, error) {
	periodString := r.URL.Query().Get("period")
	if periodString != "" {
		period, err := measurement.NewFromISO8601Duration(periodString)
		if err != nil {
			return nil, fmt.Errorf("failed to parse period from request: %w", err)
		}
		if !period.IsValid() {
			return nil, fmt.Errorf("invalid period: start must be before end")
		}
		return period, nil
	}

	startString := r.URL.Query().Get("start")
	if startString == "" {
		return nil, fmt.Errorf("period or start parameter is required")
	}

	period := measurement.Period{End: measurement.CurrentEpoch()}
	startEpoch, err := measurement.ParseEpoch(startString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start epoch: %w", err)
	}
	period.Start = startEpoch

	if endString := r.URL.Query().Get("end"); endString != "" {
		endEpoch, err := measurement.ParseEpoch(endString)
		if err != nil {
			return nil, fmt.Errorf("failed to parse end epoch: %w", err)
		}
		period.End = endEpoch
	}

	if !period.IsValid() {
		return nil, fmt.Errorf("invalid period: start must be before end")
	}

	return &period, nil
}

func newIngestAppConfigFromSpinVariables() (*ingestAppConfig, error) {
	measurementDBName, err := spinvars.Get("measurement_db_name")
	if err != nil {
		return nil, fmt.Errorf("failed to get measurement_db_name: %w", err)
	}

	apiKey, err := spinvars.Get("api_key")
	if err != nil {
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	logLevel, err := spinvars.Get("log_level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log_level: %w", err)
	}

	return &ingestAppConfig{
		MeasurementDBName: measurementDBName,
		APIKey:            apiKey,
		LogLevel:          logLevel,
	}, nil
}

func initIngestAppComponents(config ingestAppConfig) (*ingestAppComponents, error) {
	loggerOptions := &slog.HandlerOptions{
		Level: log.SlogLevelInfoFromString(config.LogLevel),
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, loggerOptions)).With("component", "ingest")
	logger.Info("Initializing ingest components")

	measurementDB, err := measurement.NewSpinSqliteDB(config.MeasurementDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite DB: %w", err)
	}

	measurementRepository, err := measurement.NewSqlRepository(measurementDB, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create measurement repository: %w", err)
	}

	secretStore := secret.NewInMemoryStore()
	secretStore.Set(config.APIKey, config.APIKey)

	return &ingestAppComponents{
		config:                config,
		measurementRepository: measurementRepository,
		secretStore:           secretStore,
		logger:                logger,
	}, nil
}

func (c *ingestAppComponents) IsReady() bool {
	if c.logger == nil {
		fmt.Println("Logger of ingest app components is not initialized")
		return false
	}

	if c.measurementRepository == nil || !c.measurementRepository.IsReady() {
		c.logger.Error("Measurement repository is not initialized or not ready")
		return false
	}

	if c.secretStore == nil {
		c.logger.Error("Secret store is not initialized")
		return false
	}

	return true
}

func (c *ingestAppComponents) Close() error {
	if c.measurementRepository != nil {
		if err := c.measurementRepository.Close(); err != nil {
			c.logger.Error("Failed to close measurement repository", "error", err)
			return err
		}
	}

	if c.secretStore != nil {
		if err := c.secretStore.Close(); err != nil {
			c.logger.Error("Failed to close secret store", "error", err)
			return err
		}
	}

	c.logger.Info("Ingest app components closed successfully")
	return nil
}
