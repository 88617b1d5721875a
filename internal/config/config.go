package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	Meli             Meli             `mapstructure:",squash"`
	Cache            Cache            `mapstructure:",squash"`
	Aggregation      Aggregation      `mapstructure:",squash"`
	TokenRefreshSync TokenRefreshSync `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Auth guarda o segredo usado para validar os tokens emitidos pelo provedor
// de identidade do dashboard. Nós apenas validamos; quem assina é o provedor.
type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Meli struct {
	APIURL      string `mapstructure:"meli_api_url"`
	AuthURL     string `mapstructure:"meli_auth_url"`
	AppID       string `mapstructure:"meli_app_id"`
	AppSecret   string `mapstructure:"meli_app_secret"`
	RedirectURI string `mapstructure:"meli_redirect_uri"`
}

type Cache struct {
	ServerTTLMinutes int `mapstructure:"cache_server_ttl_minutes"`
	ClientTTLMinutes int `mapstructure:"cache_client_ttl_minutes"`
}

type Aggregation struct {
	PageSize           int `mapstructure:"aggregation_page_size"`
	MaxPages           int `mapstructure:"aggregation_max_pages"`
	MaxOrders          int `mapstructure:"aggregation_max_orders"`
	MaxRetries         int `mapstructure:"aggregation_max_retries"`
	BatchMaxConcurrent int `mapstructure:"aggregation_batch_max_concurrent"`
	BatchPauseMS       int `mapstructure:"aggregation_batch_pause_ms"`
}

type TokenRefreshSync struct {
	CronSchedule        string `mapstructure:"token_refresh_sync_cron"`
	LookaheadHours      int    `mapstructure:"token_refresh_sync_lookahead_hours"`
	RequestDelaySeconds int    `mapstructure:"token_refresh_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"token_refresh_sync_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"token_refresh_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/meliboard")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("MELI_API_URL", "https://api.mercadolibre.com")
	viper.SetDefault("MELI_AUTH_URL", "https://auth.mercadolivre.com.br")
	viper.SetDefault("MELI_APP_ID", "your_app_id")
	viper.SetDefault("MELI_APP_SECRET", "your_app_secret")
	viper.SetDefault("MELI_REDIRECT_URI", "http://localhost:3000/oauth/callback")

	viper.SetDefault("CACHE_SERVER_TTL_MINUTES", 10)
	viper.SetDefault("CACHE_CLIENT_TTL_MINUTES", 5)

	// Limites de paginação e fan-out da agregação de pedidos
	viper.SetDefault("AGGREGATION_PAGE_SIZE", 50)
	viper.SetDefault("AGGREGATION_MAX_PAGES", 20)
	viper.SetDefault("AGGREGATION_MAX_ORDERS", 500)
	viper.SetDefault("AGGREGATION_MAX_RETRIES", 3)
	viper.SetDefault("AGGREGATION_BATCH_MAX_CONCURRENT", 3)
	viper.SetDefault("AGGREGATION_BATCH_PAUSE_MS", 500)

	// Defaults para renovação proativa de tokens do Mercado Livre
	viper.SetDefault("TOKEN_REFRESH_SYNC_CRON", "*/30 * * * *")     // A cada 30 minutos
	viper.SetDefault("TOKEN_REFRESH_SYNC_LOOKAHEAD_HOURS", 1)       // Renovar tokens que expiram em até 1h
	viper.SetDefault("TOKEN_REFRESH_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre requisições
	viper.SetDefault("TOKEN_REFRESH_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 jobs concorrentes
	viper.SetDefault("TOKEN_REFRESH_SYNC_ENABLED", false)           // Habilitar renovação proativa

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// ServerCacheTTL retorna o TTL do cache de respostas do lado do servidor
func (c *Config) ServerCacheTTL() time.Duration {
	return time.Duration(c.Cache.ServerTTLMinutes) * time.Minute
}

// ClientCacheTTL retorna o TTL do cache de respostas do lado do cliente
func (c *Config) ClientCacheTTL() time.Duration {
	return time.Duration(c.Cache.ClientTTLMinutes) * time.Minute
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
