package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/mastercuts/BookingService/internal/domain"
)

// EnvPrefix префикс переменных окружения с секретами
const EnvPrefix = "BARBERSHOP"

// Availability sources
const (
	SourceDatabase = "database"
	SourceCalendar = "calendar"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	CORS         CORSConfig         `toml:"cors"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
	Business     BusinessConfig     `toml:"business"`
	Schedule     ScheduleConfig     `toml:"schedule"`
	Availability AvailabilityConfig `toml:"availability"`
	Google       GoogleConfig       `toml:"google"`
	Admin        AdminConfig        `toml:"admin"`
	Services     []ServiceConfig    `toml:"services"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// RateLimitConfig ограничение частоты запросов на создание бронирований по IP
// TrustedProxies - IP/CIDR прокси, от которых принимается X-Forwarded-For
type RateLimitConfig struct {
	Enabled           bool     `toml:"enabled"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
	Burst             int      `toml:"burst"`
	TrustedProxies    []string `toml:"trusted_proxies"`
}

type BusinessConfig struct {
	Name     string `toml:"name"`
	Timezone string `toml:"timezone"`
}

// ScheduleConfig сетка слотов
// Если standard/sunday не заданы, используется preset
type ScheduleConfig struct {
	Preset              string   `toml:"preset"`
	Standard            []string `toml:"standard"`
	Sunday              []string `toml:"sunday"`
	SlotDurationMinutes int      `toml:"slot_duration_minutes"`
	ClosedWeekdays      []string `toml:"closed_weekdays"`
	AdvanceBookingDays  int      `toml:"advance_booking_days"`
}

type AvailabilityConfig struct {
	Source string `toml:"source"`
}

type GoogleConfig struct {
	Enabled      bool   `toml:"enabled"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
	CalendarID   string `toml:"calendar_id"`
	Timeout      int    `toml:"timeout"` // секунды
	Endpoint     string `toml:"endpoint"`
}

type AdminConfig struct {
	PasswordHash    string `toml:"password_hash"`
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
}

type ServiceConfig struct {
	Name            string `toml:"name"`
	Description     string `toml:"description"`
	Price           int    `toml:"price"`
	DurationMinutes int    `toml:"duration_minutes"`
}

// secrets значения, которые не хранятся в config.toml
type secrets struct {
	DBHost             string `envconfig:"DB_HOST"`
	DBPassword         string `envconfig:"DB_PASSWORD"`
	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	AdminPasswordHash  string `envconfig:"ADMIN_PASSWORD_HASH"`
	JWTSecret          string `envconfig:"JWT_SECRET"`
}

// Load читает config.toml, затем .env (если есть) и переменные окружения BARBERSHOP_*
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var env secrets
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.applySecrets(env)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:         LogsConfig{Level: "info"},
		Metrics:      MetricsConfig{Path: "/metrics", ServiceName: "booking_service"},
		RateLimit:    RateLimitConfig{RequestsPerMinute: 10, Burst: 3},
		Business:     BusinessConfig{Timezone: domain.DefaultTimezone},
		Schedule:     ScheduleConfig{Preset: domain.PresetHourly},
		Availability: AvailabilityConfig{Source: SourceDatabase},
		Google:       GoogleConfig{CalendarID: "primary", Timeout: 10},
		Admin:        AdminConfig{TokenTTLMinutes: 720},
	}
}

func (c *Config) applySecrets(env secrets) {
	if env.DBHost != "" {
		c.Database.Host = env.DBHost
	}
	if env.DBPassword != "" {
		c.Database.Password = env.DBPassword
	}
	if env.GoogleClientID != "" {
		c.Google.ClientID = env.GoogleClientID
	}
	if env.GoogleClientSecret != "" {
		c.Google.ClientSecret = env.GoogleClientSecret
	}
	if env.AdminPasswordHash != "" {
		c.Admin.PasswordHash = env.AdminPasswordHash
	}
	if env.JWTSecret != "" {
		c.Admin.JWTSecret = env.JWTSecret
	}
}

// Validate проверяет согласованность конфигурации
// Некорректные метки слотов считаются ошибкой конфигурации и не запускают сервис
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database.host and database.dbname are required")
	}
	if _, err := domain.LoadLocation(c.Business.Timezone); err != nil {
		return fmt.Errorf("business.timezone: %w", err)
	}
	if _, err := c.Schedule.Catalog(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	if _, err := c.Schedule.closedWeekdays(); err != nil {
		return fmt.Errorf("schedule.closed_weekdays: %w", err)
	}
	if c.Schedule.AdvanceBookingDays < 0 {
		return fmt.Errorf("schedule.advance_booking_days must not be negative")
	}
	switch c.Availability.Source {
	case SourceDatabase:
	case SourceCalendar:
		if !c.Google.Enabled {
			return fmt.Errorf("availability.source = %q requires google.enabled", SourceCalendar)
		}
	default:
		return fmt.Errorf("availability.source must be %q or %q", SourceDatabase, SourceCalendar)
	}
	if c.Google.Enabled && (c.Google.ClientID == "" || c.Google.ClientSecret == "" || c.Google.RedirectURL == "") {
		return fmt.Errorf("google.client_id, google.client_secret and google.redirect_url are required")
	}
	if c.Admin.JWTSecret == "" || c.Admin.PasswordHash == "" {
		return fmt.Errorf("admin.jwt_secret and admin.password_hash are required")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit.requests_per_minute and rate_limit.burst must be positive")
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !validProxy(proxy) {
			return fmt.Errorf("rate_limit.trusted_proxies: invalid address %q", proxy)
		}
	}
	for _, s := range c.Services {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("services: name is required")
		}
	}
	return nil
}

// Catalog собирает каталог слотов из preset и явно заданных меток
func (s ScheduleConfig) Catalog() (domain.SlotCatalog, error) {
	catalog, err := domain.CatalogPreset(s.Preset)
	if err != nil {
		return domain.SlotCatalog{}, err
	}
	if len(s.Standard) > 0 {
		catalog.Standard = toLabels(s.Standard)
	}
	if len(s.Sunday) > 0 {
		catalog.Sunday = toLabels(s.Sunday)
	}
	if s.SlotDurationMinutes > 0 {
		catalog.SlotDuration = time.Duration(s.SlotDurationMinutes) * time.Minute
	}
	if err := catalog.Validate(); err != nil {
		return domain.SlotCatalog{}, err
	}
	return catalog, nil
}

// BuildSchedule собирает доменное расписание
func (c *Config) BuildSchedule() (domain.Schedule, error) {
	loc, err := domain.LoadLocation(c.Business.Timezone)
	if err != nil {
		return domain.Schedule{}, err
	}
	catalog, err := c.Schedule.Catalog()
	if err != nil {
		return domain.Schedule{}, err
	}
	closed, err := c.Schedule.closedWeekdays()
	if err != nil {
		return domain.Schedule{}, err
	}
	return domain.Schedule{
		Catalog:            catalog,
		ClosedWeekdays:     closed,
		AdvanceBookingDays: c.Schedule.AdvanceBookingDays,
		Location:           loc,
	}, nil
}

// ServiceCatalog каталог услуг; пустая секция [[services]] означает каталог по умолчанию
func (c *Config) ServiceCatalog() domain.ServiceCatalog {
	if len(c.Services) == 0 {
		return domain.DefaultServiceCatalog()
	}
	catalog := make(domain.ServiceCatalog, 0, len(c.Services))
	for _, s := range c.Services {
		catalog = append(catalog, domain.ServiceItem{
			Name:            s.Name,
			Description:     s.Description,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}
	return catalog
}

func (s ScheduleConfig) closedWeekdays() ([]time.Weekday, error) {
	result := make([]time.Weekday, 0, len(s.ClosedWeekdays))
	for _, name := range s.ClosedWeekdays {
		wd, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		result = append(result, wd)
	}
	return result, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// validProxy IP или CIDR
func validProxy(value string) bool {
	value = strings.TrimSpace(value)
	if _, _, err := net.ParseCIDR(value); err == nil {
		return true
	}
	return net.ParseIP(value) != nil
}

func toLabels(values []string) []domain.SlotLabel {
	labels := make([]domain.SlotLabel, 0, len(values))
	for _, v := range values {
		labels = append(labels, domain.SlotLabel(v))
	}
	return labels
}
