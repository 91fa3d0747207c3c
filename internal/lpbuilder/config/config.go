// Управление конфигурацией приложения из переменных окружения.
// Содержит структуру Config для хранения параметров и функцию ReadConfig для их загрузки.
//
// Основные возможности:
//   - Загрузка конфигурации из переменных окружения с использованием тегов struct.
//   - Валидация обязательных переменных.
//   - Маскировка секретных значений в логах.
//   - Значения по умолчанию для необязательных параметров.
package config

import (
	"log/slog"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
)

type Config struct {
	DatabaseDSN string `env:"DATABASE_URL"`

	ListenAddress string `env:"LISTEN_ADDRESS"`

	WebURLRaw string `env:"WEB_URL"`
	WebURL    *url.URL

	OllamaHost string `env:"OLLAMA_HOST"`
	LatexModel string `env:"LATEX_MODEL"`
}

// ReadConfig загружает конфигурацию приложения из переменных окружения
// и выполняет валидацию. Если DATABASE_URL не задан, приложение завершает
// работу с ошибкой.
func ReadConfig() *Config {
	config := &Config{}

	envConfig("env", config)

	// Check required envs
	if config.DatabaseDSN == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	if config.WebURLRaw != "" {
		var err error
		config.WebURL, err = url.Parse(config.WebURLRaw)
		if err != nil {
			slog.Error("WEB_URL incorrect", "err", err)
			os.Exit(1)
		}
	}

	if config.ListenAddress == "" {
		config.ListenAddress = ":8080"
	}

	if config.LatexModel == "" {
		config.LatexModel = "gemma3n:latest"
	}

	return config
}

// Присваивает полям структуры значения переменных окружения. Имя переменной
// для каждого поля берётся из тега tag; поля без тега или с незаданной
// переменной пропускаются.
func envConfig(tag string, s interface{}) {
	v := reflect.ValueOf(s).Elem()
	structType := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := structType.Field(i)
		envName := field.Tag.Get(tag)
		if envName == "" {
			continue
		}

		raw, ok := os.LookupEnv(envName)
		if !ok || raw == "" {
			continue
		}

		slog.Info("Set config value",
			slog.String("key", structType.Name()+"."+field.Name),
			slog.String("value", maskSensitive(field.Name, raw)),
			slog.String("source", "ENVIRONMENT"),
		)

		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(raw)
		case int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				slog.Error("Config value is not a number", "key", envName, "value", raw)
				os.Exit(1)
			}
			v.Field(i).SetInt(int64(n))
		case bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				slog.Error("Config value is not a boolean", "key", envName, "value", raw)
				os.Exit(1)
			}
			v.Field(i).SetBool(b)
		}
	}
}

// Секреты в логе показываются только первым и последним символом.
func maskSensitive(fieldName, value string) string {
	name := strings.ToLower(fieldName)
	if !strings.Contains(name, "pass") && !strings.Contains(name, "secret") && !strings.Contains(name, "token") {
		return value
	}
	runes := []rune(value)
	if len(runes) <= 2 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}
