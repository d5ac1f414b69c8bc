package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const clockLayout = "15:04:05"

type Config struct {
	Port        string
	AppEnv      string
	AutoMigrate bool
	JWTSecret   string
	RedisAddr   string
	KafkaBroker string
	// AdminEmails sign up with the admin role.
	AdminEmails []string

	Database Database
	Face     Face
	Policy   Policy
	Schedule Schedule
	SMS      SMS
}

type Database struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type Face struct {
	BaseURL string
	Timeout time.Duration
}

// Policy holds the face acceptance thresholds. A verification passes only when
// confidence >= MinConfidence and distance < MaxDistance.
type Policy struct {
	MinConfidence float64
	MaxDistance   float64
}

type Schedule struct {
	WorkStart  string
	WorkEnd    string
	ShiftHours float64
	Timezone   string
}

type SMS struct {
	APIURL string
	APIKey string
	Sender string
}

func DefaultPolicy() Policy {
	return Policy{MinConfidence: 0.55, MaxDistance: 0.45}
}

func DefaultSchedule() Schedule {
	return Schedule{WorkStart: "09:00:00", WorkEnd: "17:00:00", ShiftHours: 8, Timezone: "Local"}
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "3000"),
		AppEnv:      getEnv("APP_ENV", "development"),
		AutoMigrate: getEnv("AUTO_MIGRATE", "") == "1",
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		AdminEmails: splitList(os.Getenv("ADMIN_EMAILS")),
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Face: Face{
			BaseURL: getEnv("FACE_SERVICE_URL", "http://localhost:5001"),
		},
		Schedule: Schedule{
			WorkStart: getEnv("WORK_START", DefaultSchedule().WorkStart),
			WorkEnd:   getEnv("WORK_END", DefaultSchedule().WorkEnd),
			Timezone:  getEnv("TIMEZONE", DefaultSchedule().Timezone),
		},
		SMS: SMS{
			APIURL: os.Getenv("SMS_API_URL"),
			APIKey: os.Getenv("SMS_API_KEY"),
			Sender: os.Getenv("SMS_SENDER"),
		},
	}

	var err error
	if cfg.Face.Timeout, err = getDuration("FACE_SERVICE_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Policy.MinConfidence, err = getFloat("FACE_MIN_CONFIDENCE", DefaultPolicy().MinConfidence); err != nil {
		return Config{}, err
	}
	if cfg.Policy.MaxDistance, err = getFloat("FACE_MAX_DISTANCE", DefaultPolicy().MaxDistance); err != nil {
		return Config{}, err
	}
	if cfg.Schedule.ShiftHours, err = getFloat("SHIFT_HOURS", DefaultSchedule().ShiftHours); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Policy.MinConfidence < 0 || c.Policy.MinConfidence > 1 {
		errs = append(errs, fmt.Errorf("FACE_MIN_CONFIDENCE must be within [0,1], got %v", c.Policy.MinConfidence))
	}
	if c.Policy.MaxDistance <= 0 || c.Policy.MaxDistance > 1 {
		errs = append(errs, fmt.Errorf("FACE_MAX_DISTANCE must be within (0,1], got %v", c.Policy.MaxDistance))
	}
	if c.Face.Timeout <= 0 {
		errs = append(errs, errors.New("FACE_SERVICE_TIMEOUT must be positive"))
	}
	if _, err := time.Parse(clockLayout, c.Schedule.WorkStart); err != nil {
		errs = append(errs, fmt.Errorf("WORK_START must be HH:MM:SS: %w", err))
	}
	if _, err := time.Parse(clockLayout, c.Schedule.WorkEnd); err != nil {
		errs = append(errs, fmt.Errorf("WORK_END must be HH:MM:SS: %w", err))
	}
	if c.Schedule.ShiftHours <= 0 {
		errs = append(errs, errors.New("SHIFT_HOURS must be positive"))
	}
	if _, err := c.Schedule.Location(); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}

	if c.IsProduction() && c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}

	return errors.Join(errs...)
}

func (s Schedule) Location() (*time.Location, error) {
	if s.Timezone == "" || strings.EqualFold(s.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
