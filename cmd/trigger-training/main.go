// trigger-training command kicks off a model training run over the
// configured historical window.

package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const DefaultPeriod = "P30D"
const DefaultTaskAPIPath = "/tasks/trainModels"
const DefaultRequestTimeout = 120 * time.Second

type Config struct {
	APIEndpoint string
	APIKey      string
	TaskAPIPath string

	Period         string
	RequestTimeout time.Duration
}

func main() {
	fmt.Println("Triggering model training...")
	config, err := loadConfigFromEnv()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	httpClient := &http.Client{
		Timeout: config.RequestTimeout,
	}

	if err := triggerTrainingTask(httpClient, config); err != nil {
		fmt.Printf("Error triggering training run: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Model training triggered successfully.")
}

func loadConfigFromEnv() (*Config, error) {
	apiEndpoint := os.Getenv("ZS_API_ENDPOINT")
	if apiEndpoint == "" {
		return nil, fmt.Errorf("ZS_API_ENDPOINT is not set")
	}

	apiKey := os.Getenv("ZS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ZS_API_KEY is not set")
	}

	taskAPIPath := os.Getenv("ZS_TRAINING_TASK_PATH")
	if taskAPIPath == "" {
		taskAPIPath = DefaultTaskAPIPath
	}

	period := os.Getenv("ZS_TRAINING_PERIOD")
	if period == "" {
		period = DefaultPeriod
	}

	return &Config{
		APIEndpoint:    apiEndpoint,
		APIKey:         apiKey,
		TaskAPIPath:    taskAPIPath,
		Period:         period,
		RequestTimeout: DefaultRequestTimeout,
	}, nil
}

func triggerTrainingTask(client *http.Client, config *Config) error {
	if client == nil {
		return fmt.Errorf("http client is required")
	}

	taskURL, err := url.JoinPath(config.APIEndpoint, config.TaskAPIPath)
	if err != nil {
		return fmt.Errorf("failed to construct task URL: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, taskURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+config.APIKey)

	q := req.URL.Query()
	q.Add("period", config.Period)
	req.URL.RawQuery = q.Encode()

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func(resp *http.Response) {
		if err := resp.Body.Close(); err != nil {
			fmt.Printf("failed to close response body: %v\n", err)
		}
	}(resp)

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d - %s", resp.StatusCode, string(content))
	}

	fmt.Printf("Training report: %s\n", string(content))
	return nil
}
