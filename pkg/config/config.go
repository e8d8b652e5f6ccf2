package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backends admitidos por el almacén de entidades.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMySQL    = "mysql"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	JWT       JWTConfig
	Store     StoreConfig
	DB        DBConfig
	Redis     RedisConfig
	MySQL     MySQLConfig
	Inventory InventoryConfig
	Auth      AuthConfig
	Receipt   ReceiptConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// StoreConfig selección del backend del almacén y prefijo de claves.
type StoreConfig struct {
	Backend   string // memory, postgres, redis, mysql
	KeyPrefix string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	ForceIPv4   bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN arma el connection string con la contraseña escapada.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// MySQLConfig conexión a MySQL (DSN del driver go-sql-driver/mysql).
type MySQLConfig struct {
	DSN      string
	MaxConns int
}

// RedisConfig conexión a Redis y vida del lease de escritura.
type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	LockTTLSeconds int
}

// LockTTL duración del lease.
func (c RedisConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}

// InventoryConfig políticas de inventario.
type InventoryConfig struct {
	AllowNegativeStock bool // permite vender más de lo disponible
}

// AuthConfig usuario que se crea al arrancar si no hay ninguno.
type AuthConfig struct {
	DefaultUsername string
	DefaultPassword string
}

// ReceiptConfig presentación del comprobante PDF.
type ReceiptConfig struct {
	Locale       string // etiqueta BCP 47, ej. es-CO
	BusinessName string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_BACKEND, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: .env o config.env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-pos"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "inventario-pos"),
		},
		Store: StoreConfig{
			Backend:   strings.ToLower(getString(v, "STORE_BACKEND", StoreMemory)),
			KeyPrefix: getString(v, "STORE_KEY_PREFIX", "inv_"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventario_pos"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			ForceIPv4:   getBool(v, "DB_FORCE_IPV4", false),
		},
		Redis: RedisConfig{
			Addr:           getString(v, "REDIS_ADDR", "localhost:6379"),
			Password:       getString(v, "REDIS_PASSWORD", ""),
			DB:             getInt(v, "REDIS_DB", 0),
			LockTTLSeconds: getInt(v, "REDIS_LOCK_TTL_SECONDS", 10),
		},
		MySQL: MySQLConfig{
			DSN:      getString(v, "MYSQL_DSN", "root:root@tcp(localhost:3306)/inventario_pos?parseTime=true"),
			MaxConns: getInt(v, "MYSQL_MAX_CONNS", 10),
		},
		Inventory: InventoryConfig{
			AllowNegativeStock: getBool(v, "INVENTORY_ALLOW_NEGATIVE_STOCK", false),
		},
		Auth: AuthConfig{
			DefaultUsername: getString(v, "AUTH_DEFAULT_USERNAME", "admin"),
			DefaultPassword: getString(v, "AUTH_DEFAULT_PASSWORD", "admin123"),
		},
		Receipt: ReceiptConfig{
			Locale:       getString(v, "RECEIPT_LOCALE", "es-CO"),
			BusinessName: getString(v, "RECEIPT_BUSINESS_NAME", "Inventario POS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa valores que no tienen un default razonable.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory, StorePostgres, StoreRedis, StoreMySQL:
	default:
		return fmt.Errorf("STORE_BACKEND inválido: %q", c.Store.Backend)
	}
	if c.Store.KeyPrefix == "" {
		return fmt.Errorf("STORE_KEY_PREFIX no puede estar vacío")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	if c.Redis.LockTTLSeconds <= 0 {
		return fmt.Errorf("REDIS_LOCK_TTL_SECONDS debe ser positivo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
