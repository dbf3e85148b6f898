package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string
	Env  string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string

	JWTSecret string

	WorkHours WorkHoursConfig
	Payroll   PayrollConfig
	Face      FaceConfig

	ArtifactDir string
}

// WorkHoursConfig are the wall-clock boundaries attendance is classified
// against. They also seed the administrative shift auto-created for official
// employees.
type WorkHoursConfig struct {
	WorkStart string // "08:30"
	WorkEnd   string // "17:30"

	AdministrativeShiftName string
}

// PayrollConfig holds per-occurrence penalties and overtime multipliers in the
// company's currency unit. Interns get a reduced penalty schedule.
type PayrollConfig struct {
	LatePenalty   float64
	AbsentPenalty float64
	EarlyPenalty  float64

	InternLatePenalty   float64
	InternAbsentPenalty float64
	InternEarlyPenalty  float64

	OfficialOvertimeMultiplier float64
	ContractOvertimeMultiplier float64
}

type FaceConfig struct {
	ServiceURL     string
	RequestTimeout time.Duration
	MatchThreshold float64
	Required       bool
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "3000"),
		Env:  getEnv("ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "timekeep"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: getEnv("KAFKA_BROKER", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		WorkHours: WorkHoursConfig{
			WorkStart:               getEnv("WORK_START", "08:30"),
			WorkEnd:                 getEnv("WORK_END", "17:30"),
			AdministrativeShiftName: getEnv("ADMINISTRATIVE_SHIFT_NAME", "Administrative Shift"),
		},

		Payroll: PayrollConfig{
			LatePenalty:   getEnvFloat("PENALTY_LATE", 50000),
			AbsentPenalty: getEnvFloat("PENALTY_ABSENT", 200000),
			EarlyPenalty:  getEnvFloat("PENALTY_EARLY", 30000),

			InternLatePenalty:   getEnvFloat("PENALTY_INTERN_LATE", 20000),
			InternAbsentPenalty: getEnvFloat("PENALTY_INTERN_ABSENT", 100000),
			InternEarlyPenalty:  getEnvFloat("PENALTY_INTERN_EARLY", 15000),

			OfficialOvertimeMultiplier: getEnvFloat("OVERTIME_MULTIPLIER_OFFICIAL", 1.5),
			ContractOvertimeMultiplier: getEnvFloat("OVERTIME_MULTIPLIER_CONTRACT", 1.2),
		},

		Face: FaceConfig{
			ServiceURL:     getEnv("FACE_SERVICE_URL", "http://localhost:9000"),
			RequestTimeout: getEnvDuration("FACE_REQUEST_TIMEOUT", 5*time.Second),
			MatchThreshold: getEnvFloat("FACE_MATCH_THRESHOLD", 0.6),
			Required:       getEnvBool("FACE_CHECK_REQUIRED", false),
		},

		ArtifactDir: getEnv("ARTIFACT_DIR", "public/images/user"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
