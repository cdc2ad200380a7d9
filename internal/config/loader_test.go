package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/codearena/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"CODEARENA_CONFIG",
	"CODEARENA_BASE_URL",
	"CODEARENA_LOG_LEVEL",
	"CODEARENA_LOG_FILE",
	"CODEARENA_REQUEST_TIMEOUT",
	"CODEARENA_STATE_PATH",
	"CODEARENA_LINT_DELAY_MS",
	"CODEARENA_METRICS_ADDR",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "codearena.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then defaults are returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://127.0.0.1:8000/api")
				convey.So(cfg.LintDelayMS, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When loading with environment variables", func() {
			_ = os.Setenv("CODEARENA_BASE_URL", "https://arena.example.com/api")
			_ = os.Setenv("CODEARENA_REQUEST_TIMEOUT", "45s")
			_ = os.Setenv("CODEARENA_LINT_DELAY_MS", "250")
			_ = os.Setenv("CODEARENA_METRICS_ADDR", ":9091")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env overrides defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "https://arena.example.com/api")
				convey.So(cfg.RequestTimeout, convey.ShouldEqual, 45*time.Second)
				convey.So(cfg.LintDelayMS, convey.ShouldEqual, 250)
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9091")
			})
		})

		convey.Convey("When loading with a YAML file", func() {
			path := createTempConfigFile(t, `
# comment
base_url: "http://localhost:9000/api"
log_level: debug
request_timeout: 2m
state_path: /tmp/arena/state.json
`)
			_ = os.Setenv("CODEARENA_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values apply and the rest stay default", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://localhost:9000/api")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.RequestTimeout, convey.ShouldEqual, 2*time.Minute)
				convey.So(cfg.StatePath, convey.ShouldEqual, "/tmp/arena/state.json")
				convey.So(cfg.LintDelayMS, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When file and env both set a key", func() {
			path := createTempConfigFile(t, "base_url: http://from-file:1/api\nlint_delay_ms: 100\n")
			_ = os.Setenv("CODEARENA_CONFIG", path)
			_ = os.Setenv("CODEARENA_BASE_URL", "http://from-env:2/api")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://from-env:2/api")
				convey.So(cfg.LintDelayMS, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When the YAML file is invalid", func() {
			path := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("CODEARENA_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the YAML file does not exist", func() {
			_ = os.Setenv("CODEARENA_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a numeric value is malformed", func() {
			_ = os.Setenv("CODEARENA_LINT_DELAY_MS", "soon")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it fails to load", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given invalid values", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When base_url is empty", func() {
			_ = os.Setenv("CODEARENA_BASE_URL", "")
			cfg, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "base_url must not be empty")
			})
		})

		convey.Convey("When base_url is not http", func() {
			_ = os.Setenv("CODEARENA_BASE_URL", "ftp://host/api")
			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the lint delay is negative", func() {
			_ = os.Setenv("CODEARENA_LINT_DELAY_MS", "-1")
			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the timeout is negative", func() {
			cfg := config.New(ctx)
			cfg.RequestTimeout = -time.Second
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
