// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	DBDriver            string        `mapstructure:"DB_DRIVER"`
	DBSource            string        `mapstructure:"DB_SOURCE"`
	ServerAddress       string        `mapstructure:"SERVER_ADDRESS"`
	TokenSymmetricKey   string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AccessTokenDuration time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	Environement        string        `mapstructure:"GO_ENV"`
	DemoMode            bool          `mapstructure:"DEMO_MODE"`
	BcryptCost          int           `mapstructure:"BCRYPT_COST"`

	RateLimitAttempts int           `mapstructure:"RATE_LIMIT_ATTEMPTS"`
	RateLimitWindow   time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`

	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string `mapstructure:"KAFKA_TOPIC"`

	FeeStructureFile string `mapstructure:"FEE_STRUCTURE_FILE"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	Currency         string `mapstructure:"CURRENCY"`
	MinPaymentAmount string `mapstructure:"MIN_PAYMENT_AMOUNT"`
	MaxPaymentAmount string `mapstructure:"MAX_PAYMENT_AMOUNT"`

	RazorpayKeyID        string `mapstructure:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret    string `mapstructure:"RAZORPAY_KEY_SECRET"`
	RazorpayBaseURL      string `mapstructure:"RAZORPAY_BASE_URL"`
	StripeSecretKey      string `mapstructure:"STRIPE_SECRET_KEY"`
	StripePublishableKey string `mapstructure:"STRIPE_PUBLISHABLE_KEY"`
	PayPalClientID       string `mapstructure:"PAYPAL_CLIENT_ID"`
	PayPalClientSecret   string `mapstructure:"PAYPAL_CLIENT_SECRET"`
	PayPalBaseURL        string `mapstructure:"PAYPAL_BASE_URL"`

	InstitutionName     string `mapstructure:"INSTITUTION_NAME"`
	InstitutionSubtitle string `mapstructure:"INSTITUTION_SUBTITLE"`
	InstitutionAddress  string `mapstructure:"INSTITUTION_ADDRESS"`
	ContactEmail        string `mapstructure:"CONTACT_EMAIL"`
	ContactPhone        string `mapstructure:"CONTACT_PHONE"`
	WebsiteURL          string `mapstructure:"WEBSITE_URL"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}

// Brokers splits the comma separated KAFKA_BROKERS value.
func (c Config) Brokers() []string {
	var brokers []string

	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return brokers
}

// FeeClass is one course year of the fee structure file. Amounts are decimal strings.
type FeeClass struct {
	Course string            `mapstructure:"course"`
	Year   string            `mapstructure:"year"`
	Fees   map[string]string `mapstructure:"fees"`
}

// LoadFeeStructure reads the fee classes listed under "classes" in file.
// The format follows the file extension (yaml, json, toml).
func LoadFeeStructure(file string) ([]FeeClass, error) {
	v := viper.New()
	v.SetConfigFile(file)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var classes []FeeClass
	if err := v.UnmarshalKey("classes", &classes); err != nil {
		return nil, err
	}

	return classes, nil
}
