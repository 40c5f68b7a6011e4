package config

import (
	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"nimbus-sync"`

	Server ServerConfig
	Auth   AuthConfig
	Email  EmailConfig
	DB     DBConfig
	Redis  RedisConfig
	Minio  MinioConfig
	Jaeger JaegerConfig
}

type ServerConfig struct {
	Mode   string `env:"SERVER_MODE"   envDefault:"dev"`
	Port   int    `env:"SERVER_PORT"   envDefault:"8080"`
	Scheme string `env:"SERVER_SCHEME" envDefault:"http"`
	Domain string `env:"SERVER_DOMAIN" envDefault:"localhost"`

	// ClientURL is where the browser application lives. OAuth callbacks
	// redirect back to it with the issued tokens.
	ClientURL string `env:"CLIENT_URL" envDefault:"http://localhost:3000"`
}

type AuthConfig struct {
	JWT    JWTConfig
	Google GoogleConfig

	// StepUpMethods lists the credential-verification paths that require a
	// second factor before tokens are issued. Federated logins are trusted
	// to have their own MFA and are excluded on purpose.
	StepUpMethods []string `env:"AUTH_STEPUP_METHODS" envSeparator:"," envDefault:"password"`

	DeviceSalt string `env:"AUTH_DEVICE_SALT" envDefault:"nimbus-device"`
}

type JWTConfig struct {
	Secret        string `env:"AUTH_JWT_SECRET,notEmpty"`
	RefreshSecret string `env:"AUTH_JWT_REFRESH_SECRET,notEmpty"`
	Issuer        string `env:"AUTH_JWT_ISSUER" envDefault:"nimbus-sync"`
}

type GoogleConfig struct {
	Enabled      bool   `env:"GOOGLE_OAUTH_ENABLED" envDefault:"false"`
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL"`
}

type EmailConfig struct {
	Server string `env:"EMAIL_SERVER" envDefault:"smtp.gmail.com"`
	Port   int    `env:"EMAIL_PORT"   envDefault:"587"`
	User   string `env:"EMAIL_USER"`
	Pass   string `env:"EMAIL_PASS"`
	Admin  string `env:"EMAIL_ADMIN"`
}

type DBConfig struct {
	Host     string `env:"POSTGRES_HOST"     envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT"     envDefault:"5432"`
	User     string `env:"POSTGRES_USER"     envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	Database string `env:"POSTGRES_DB"       envDefault:"nimbus"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Pass string `env:"REDIS_PASS"`
}

type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"avatars"`
	UseSSL    bool   `env:"MINIO_SSL" envDefault:"false"`
}

type JaegerConfig struct {
	Sampler  JaegerSamplerConfig
	Reporter JaegerReporterConfig
}

type JaegerSamplerConfig struct {
	Type  string  `env:"JAEGER_SAMPLER_TYPE" envDefault:"const"`
	Param float64 `env:"JAEGER_SAMPLER_PARAM" envDefault:"1"`
}

type JaegerReporterConfig struct {
	LogSpans           bool   `env:"JAEGER_REPORTER_LOG_SPANS" envDefault:"false"`
	LocalAgentHostPort string `env:"JAEGER_AGENT_ADDR" envDefault:"localhost:6831"`
}

func MustLoad(envPath string) Config {
	if err := godotenv.Load(envPath); err != nil {
		zap.L().Debug("no env file loaded", zap.String("path", envPath), zap.Error(err))
	}

	conf := Config{}
	if err := env.Parse(&conf); err != nil {
		zap.L().Fatal("failed to parse config", zap.Error(err))
	}

	return conf
}
