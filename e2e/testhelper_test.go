package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/makeasinger/songsmith/internal/config"
	"github.com/makeasinger/songsmith/internal/playback"
	"github.com/makeasinger/songsmith/internal/router"
	"github.com/makeasinger/songsmith/internal/service"
)

// testApp holds all components needed for testing
type testApp struct {
	app *fiber.App
	hub *playback.Hub
}

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", Env: "test", LogLevel: "info"},
		CORS:      config.CORSConfig{AllowOrigins: "*"},
		Generator: config.GeneratorConfig{DefaultCount: 5, MaxCount: 10, RetryFactor: 10},
		Playback:  config.PlaybackConfig{DefaultBPM: 100},
	}
}

// setupApp creates a Fiber app identical to main.go
func setupApp(t *testing.T) *testApp {
	t.Helper()
	return setupAppWithConfig(t, testConfig())
}

func setupAppWithConfig(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()

	hub := playback.NewHub()
	go hub.Run()
	t.Cleanup(hub.Close)

	songService := service.NewSongService(service.Options{
		DefaultCount: cfg.Generator.DefaultCount,
		MaxCount:     cfg.Generator.MaxCount,
		RetryFactor:  cfg.Generator.RetryFactor,
		DefaultBPM:   cfg.Playback.DefaultBPM,
	})

	app := router.New(cfg, router.Deps{
		Songs:    songService,
		Hub:      hub,
		Validate: validator.New(),
	})

	return &testApp{app: app, hub: hub}
}

// doRequest is a helper to perform HTTP requests against the test app.
func doRequest(app *fiber.App, method, path string, body string, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.Test(req, -1)
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}

// parseJSON parses response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, body)
	}
	return result
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

// assertErrorCode checks the code in an error envelope.
func assertErrorCode(t *testing.T, result map[string]interface{}, expected string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatal("expected error object in response")
	}
	if errObj["code"] != expected {
		t.Errorf("expected error code %s, got %v", expected, errObj["code"])
	}
}
