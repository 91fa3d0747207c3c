// Пакет lpbuilder предоставляет HTTP API редактора учебной страницы.
// Сервер хранит единственную учебную страницу, записи вопросов с вариантами
// ответов и отправки ответов учеников, а также проксирует генерацию
// LaTeX-формул через языковую модель.
//
// Основные возможности:
//   - Чтение и полная перезапись сохранённой учебной страницы.
//   - Создание, обновление и удаление записей вопросов.
//   - Проверка ответов учеников на стороне сервера.
//   - Генерация LaTeX-разметки из английского текста.
package lpbuilder

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/aisa-it/lpbuilder/lpbuilder.go/internal/lpbuilder/config"
)

// LatexConverter генерирует LaTeX-разметку из английского текста.
type LatexConverter interface {
	EnglishToLatex(ctx context.Context, text string) (string, error)
}

type Services struct {
	db    *gorm.DB
	latex LatexConverter
}

var cfg *config.Config
var appVersion string

// allowedOrigins ограничивает CORS источником веб-интерфейса, если WEB_URL задан.
func allowedOrigins(c *config.Config) []string {
	if c.WebURL == nil {
		return nil
	}
	return []string{c.WebURL.Scheme + "://" + c.WebURL.Host}
}

// ServerHeader middleware adds a `Server` header to the response.
func ServerHeader(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderServer, "LPBuilder")
		return next(c)
	}
}

func Server(db *gorm.DB, c *config.Config, latex LatexConverter, version string) {
	cfg = c
	appVersion = version

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}

		// Ignore 404
		if code == http.StatusNotFound {
			c.NoContent(http.StatusNotFound)
			return
		}
		slog.Error("Unhandled error in endpoint", "url", c.Request().URL, "err", err)
		EErrorMsgStatus(c, nil, code)
	}

	s := &Services{
		db:    db,
		latex: latex,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down gracefully, press Ctrl+C again to force")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown", "err", err)
		}
		os.Exit(0)
	}()

	// Global middlewares
	e.Use(ServerHeader)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     allowedOrigins(cfg),
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: "5M",
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level:     9,
		MinLength: 2048,
	}))
	e.Use(echoprometheus.NewMiddleware("lpbuilder"))
	e.Pre(middleware.AddTrailingSlash())

	e.Validator = NewRequestValidator()

	apiGroup := e.Group("/api/")

	apiGroup.GET("version/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"version": appVersion})
	})

	s.AddLearningPageServices(apiGroup)
	s.AddQuestionServices(apiGroup)
	s.AddLatexServices(apiGroup)

	go func() {
		bootTimeGauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lpbuilder",
			Name:      "boot_time",
			Help:      "Server startup time",
		})
		bootTimeGauge.Set(float64(time.Now().UnixMilli()))

		if err := prometheus.Register(bootTimeGauge); err != nil {
			slog.Error("Register boot time gauge", "err", err)
			os.Exit(1)
		}

		metrics := echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(":2112"); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server fail", "err", err)
		}
	}()

	if err := e.Start(cfg.ListenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server fail", "err", err)
	}
}
