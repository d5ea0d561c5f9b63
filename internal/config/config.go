package config

import (
	"github.com/spf13/viper"
)

// Config is the runtime configuration, populated from environment
// variables. In a cluster deployment the DB, AWS and identity settings
// come in as pod environment variables.
type Config struct {
	DBHost            string `mapstructure:"DB_HOST"`
	DBPort            string `mapstructure:"DB_PORT"`
	DBUser            string `mapstructure:"DB_USER"`
	DBPassword        string `mapstructure:"DB_PASSWORD"`
	DBName            string `mapstructure:"DB_NAME"`
	ServerPort        string `mapstructure:"SERVER_PORT"`
	AWSRegion         string `mapstructure:"AWS_REGION"`
	ExportSQSQueueURL string `mapstructure:"EXPORT_SQS_QUEUE_URL"`
	AWSEndpoint       string `mapstructure:"AWS_ENDPOINT"`
	IdentityURL       string `mapstructure:"IDENTITY_PROVIDER_URL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	JWTIssuer         string `mapstructure:"JWT_ISSUER"`
	EmailSender       string `mapstructure:"EMAIL_SENDER"`
	ReportCompany     string `mapstructure:"REPORT_COMPANY"`
	IsLocalDev        bool   `mapstructure:"IS_LOCAL_DEV"`
}

// LoadConfig reads configuration from environment variables with
// local-development defaults. When JWT_SECRET is set, session tokens are
// verified locally; otherwise every lookup goes to the identity provider.
func LoadConfig() (config Config, err error) {
	viper.SetDefault("DB_HOST", "db")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "payroll_db")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("EXPORT_SQS_QUEUE_URL", "http://localstack:4566/000000000000/payroll-export-queue")
	viper.SetDefault("AWS_ENDPOINT", "http://localstack:4566")
	viper.SetDefault("IDENTITY_PROVIDER_URL", "http://localhost:9999/")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "payroll-service")
	viper.SetDefault("EMAIL_SENDER", "payroll@payroll-service.com")
	viper.SetDefault("REPORT_COMPANY", "Euro Painters")
	viper.SetDefault("IS_LOCAL_DEV", false)

	// Read in environment variables that match the keys.
	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	return
}
