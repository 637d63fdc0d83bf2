package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Flights  []FlightConfig `yaml:"flights"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Enabled            bool     `yaml:"enabled"`
	Brokers            []string `yaml:"brokers"`
	OrderEventsTopic   string   `yaml:"order_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	ReservationTimeoutSeconds int     `yaml:"reservation_timeout_seconds"`
	PaymentMaxAttempts        int     `yaml:"payment_max_attempts"`
	PaymentBackoffSeconds     int     `yaml:"payment_backoff_seconds"`
	PaymentTimeoutSeconds     int     `yaml:"payment_timeout_seconds"`
	PaymentFailureRate        float64 `yaml:"payment_failure_rate"`
	SeatMapCacheTTLSeconds    int     `yaml:"seat_map_cache_ttl_seconds"`
}

// FlightConfig seeds one flight's seat map: Rows lists the row letters and
// SeatsPerRow the seats in each row, so rows [A..E] x 6 gives seats A1..E6.
type FlightConfig struct {
	ID          string   `yaml:"id"`
	Rows        []string `yaml:"rows"`
	SeatsPerRow int      `yaml:"seats_per_row"`
}

// SeatNumbers expands the flight config into its seat numbers in order.
func (f FlightConfig) SeatNumbers() []string {
	seats := make([]string, 0, len(f.Rows)*f.SeatsPerRow)
	for _, row := range f.Rows {
		for i := 1; i <= f.SeatsPerRow; i++ {
			seats = append(seats, fmt.Sprintf("%s%d", row, i))
		}
	}
	return seats
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Booking.ReservationTimeoutSeconds <= 0 {
		c.Booking.ReservationTimeoutSeconds = 900
	}
	if c.Booking.PaymentMaxAttempts <= 0 {
		c.Booking.PaymentMaxAttempts = 3
	}
	if c.Booking.PaymentBackoffSeconds <= 0 {
		c.Booking.PaymentBackoffSeconds = 1
	}
	if c.Booking.PaymentTimeoutSeconds <= 0 {
		c.Booking.PaymentTimeoutSeconds = 10
	}
	if c.Booking.PaymentFailureRate <= 0 {
		c.Booking.PaymentFailureRate = 0.15
	}
	if c.Booking.SeatMapCacheTTLSeconds <= 0 {
		c.Booking.SeatMapCacheTTLSeconds = 2
	}
}
