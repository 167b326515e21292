package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Postgres DBConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Vertex   VertexConfig
	Jobs     JobsConfig
	Logger   Logger
}

type ServerConfig struct {
	AppVersion   string
	Port         string
	Mode         string
	APIKey       string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxCPUUsage  float64
	AllowOrigins []string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	PgDriver string
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	UseTLS        bool
}

// StorageConfig points at an S3-compatible endpoint. The default is the
// Cloud Storage interoperability endpoint, so objects are addressed to the
// generation backend as <URIScheme>://<Bucket>/<key>.
type StorageConfig struct {
	Endpoint           string
	Region             string
	AccessKey          string
	SecretKey          string
	Bucket             string
	URIScheme          string
	ObjectPrefix       string
	TempInputsPrefix   string
	VideoOutputsPrefix string
	ProxyPath          string
}

type VertexConfig struct {
	ProjectID       string
	Location        string
	VideoModel      string
	CredentialsFile string
	Endpoint        string
	RequestTimeout  time.Duration
}

type JobsConfig struct {
	RefreshLockTTL time.Duration
	MaxUploadBytes int64
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	// storage.secretKey can be overridden with STORAGE_SECRETKEY.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.Storage.Bucket == "" {
		return nil, errors.New("storage.bucket is required")
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.readTimeout", 10*time.Second)
	v.SetDefault("server.writeTimeout", 60*time.Second)
	v.SetDefault("server.maxCPUUsage", 90.0)
	v.SetDefault("postgres.sslMode", "require")
	v.SetDefault("postgres.pgDriver", "pgx")
	v.SetDefault("storage.endpoint", "https://storage.googleapis.com")
	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.uriScheme", "gs")
	v.SetDefault("storage.objectPrefix", "media_studio_uploads/")
	v.SetDefault("storage.tempInputsPrefix", "media_studio_uploads/temp_inputs/")
	v.SetDefault("storage.videoOutputsPrefix", "media_studio_uploads/video_outputs/")
	v.SetDefault("storage.proxyPath", "/api/v1/media/files/")
	v.SetDefault("vertex.location", "us-central1")
	v.SetDefault("vertex.videoModel", "veo-2.0-generate-001")
	v.SetDefault("vertex.requestTimeout", 30*time.Second)
	v.SetDefault("jobs.refreshLockTTL", 30*time.Second)
	v.SetDefault("jobs.maxUploadBytes", 20<<20)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
}
