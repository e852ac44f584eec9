package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	DefaultPort    = 45565
	DefaultBacklog = 6
)

// DiscoveryMode represents how the client finds the server
type DiscoveryMode string

const (
	DiscoveryStatic     DiscoveryMode = "static"
	DiscoveryKubernetes DiscoveryMode = "kubernetes"
)

// ServerConfig holds the color server configuration
type ServerConfig struct {
	Debug     bool
	LogFormat string // text, json

	// Listener
	Port    int
	Backlog int
	Workers int // 0 = one goroutine per connection

	// Health API
	HealthEnabled    bool
	HealthServerPort string
}

// ClientConfig holds the color client configuration
type ClientConfig struct {
	Debug     bool
	LogFormat string

	// Static target
	ServerHost string
	ServerPort int

	// Discovery
	DiscoveryMode  DiscoveryMode
	ServiceName    string
	Namespace      string
	KubeConfigPath string
	KubeContext    string

	// UserName skips the interactive name prompt when set
	UserName string
}

// ListenAddr is the address the server binds.
func (c *ServerConfig) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

// LoadServerFromEnv loads server configuration from the environment and an optional .env file
func LoadServerFromEnv() (*ServerConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		Debug:     getEnvBool("DEBUG", false),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		Port:    getEnvInt("COLOR_PORT", DefaultPort),
		Backlog: getEnvInt("COLOR_BACKLOG", DefaultBacklog),
		Workers: getEnvInt("WORKER_POOL_SIZE", 0),

		HealthEnabled:    getEnvBool("HEALTH_ENABLED", true),
		HealthServerPort: getEnv("HEALTH_SERVER_PORT", "8080"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServerConfig) validate() error {
	if err := validatePort("COLOR_PORT", c.Port); err != nil {
		return err
	}
	if c.Backlog < 0 {
		return fmt.Errorf("COLOR_BACKLOG must not be negative: %d", c.Backlog)
	}
	if c.Workers < 0 {
		return fmt.Errorf("WORKER_POOL_SIZE must not be negative: %d", c.Workers)
	}
	if !contains([]string{"text", "json"}, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("unsupported LOG_FORMAT: %s (supported: text, json)", c.LogFormat)
	}
	return nil
}

// LoadClient loads client configuration from the environment, then applies
// command line arguments on top. The first positional argument, if any, is the server host.
func LoadClient(args []string) (*ClientConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &ClientConfig{
		Debug:     getEnvBool("DEBUG", false),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		ServerHost: getEnv("COLOR_SERVER_HOST", "localhost"),
		ServerPort: getEnvInt("COLOR_SERVER_PORT", DefaultPort),

		ServiceName:    getEnv("COLOR_SERVICE_NAME", ""),
		Namespace:      determineNamespace(),
		KubeConfigPath: getEnv("KUBECONFIG", ""),
		KubeContext:    getEnv("KUBE_CONTEXT", ""),
	}
	cfg.DiscoveryMode = determineDiscoveryMode(cfg.ServiceName)

	flags := pflag.NewFlagSet("colorclient", pflag.ContinueOnError)
	flags.IntVarP(&cfg.ServerPort, "port", "p", cfg.ServerPort, "color server port")
	flags.StringVarP(&cfg.UserName, "name", "n", "", "user name (skips the prompt)")
	discovery := flags.String("discovery", string(cfg.DiscoveryMode), "server discovery mode: static or kubernetes")
	flags.StringVar(&cfg.ServiceName, "service", cfg.ServiceName, "color server service name (kubernetes discovery)")
	flags.StringVar(&cfg.Namespace, "namespace", cfg.Namespace, "kubernetes namespace to search")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		cfg.ServerHost = flags.Arg(0)
	}
	cfg.DiscoveryMode = DiscoveryMode(strings.ToLower(*discovery))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ClientConfig) validate() error {
	if err := validatePort("COLOR_SERVER_PORT", c.ServerPort); err != nil {
		return err
	}
	switch c.DiscoveryMode {
	case DiscoveryStatic:
		if c.ServerHost == "" {
			return fmt.Errorf("server host must not be empty")
		}
	case DiscoveryKubernetes:
	default:
		return fmt.Errorf("unsupported discovery mode: %s (supported: static, kubernetes)", c.DiscoveryMode)
	}
	return nil
}

// loadDotEnv reads ENV_FILE (default .env) without overriding variables already set.
func loadDotEnv() error {
	path := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func validatePort(name string, port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("%s out of range: %d", name, port)
	}
	return nil
}

func determineNamespace() string {
	if ns := os.Getenv("NAMESPACE"); ns != "" {
		return ns
	}
	// Kubernetes downward API
	if ns := os.Getenv("POD_NAMESPACE"); ns != "" {
		return ns
	}
	// Read from service account (in-cluster)
	if data, err := os.ReadFile("/var/run/secrets/kubernetes.io/serviceaccount/namespace"); err == nil {
		return strings.TrimSpace(string(data))
	}
	return "default"
}

func determineDiscoveryMode(serviceName string) DiscoveryMode {
	if mode := os.Getenv("DISCOVERY_MODE"); mode != "" {
		if strings.EqualFold(mode, "kubernetes") || strings.EqualFold(mode, "k8s") {
			return DiscoveryKubernetes
		}
		return DiscoveryStatic
	}
	// Auto-detect: a service name means kubernetes discovery
	if serviceName != "" {
		return DiscoveryKubernetes
	}
	return DiscoveryStatic
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
