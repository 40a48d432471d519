// Package config loads the server configuration from a YAML file, a .env
// file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/celestiaorg/hypermedia/internal/constants"
	"github.com/celestiaorg/hypermedia/internal/db"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

// Default server settings
const (
	DefaultAddress = ":8000"
	DefaultBaseURL = "http://localhost:8000"
	DefaultType    = hypermedia.HAL
)

// Curie configures the compact URI used for custom link relations
type Curie struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
}

// Server holds the configuration of the HAL server
type Server struct {
	Address string `yaml:"address"`
	BaseURL string `yaml:"base_url"`
	// Types are decoded from selector names such as "hal"
	Types                []hypermedia.Type `yaml:"types"`
	Curie                Curie             `yaml:"curie"`
	DisablePluralization bool              `yaml:"disable_pluralization"`
	DB                   db.Options        `yaml:"db"`
}

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Load reads the .env file when present, then the YAML file named by
// HYPERMEDIA_CONFIG, then applies environment overrides.
func Load() (*Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()
	if path := GetEnv(constants.EnvConfigFile, ""); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the default configuration
func Default() *Server {
	return &Server{
		Address: DefaultAddress,
		BaseURL: DefaultBaseURL,
		Types:   []hypermedia.Type{DefaultType},
	}
}

// LoadFile overlays the YAML file at path onto the configuration
func (s *Server) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration can be served
func (s *Server) Validate() error {
	if s.Address == "" {
		return errors.New("server address cannot be empty")
	}
	if len(s.Types) == 0 {
		return errors.New("at least one hypermedia type is required")
	}
	for _, t := range s.Types {
		if !t.Supported() {
			return fmt.Errorf("%w: %s", hypermedia.ErrUnsupportedType, t)
		}
	}
	if (s.Curie.Name == "") != (s.Curie.Href == "") {
		return errors.New("curie name and href must be set together")
	}
	return nil
}

func (s *Server) applyEnv() error {
	s.Address = GetEnv(constants.EnvListenAddress, s.Address)
	s.BaseURL = GetEnv(constants.EnvBaseURL, s.BaseURL)
	s.Curie.Name = GetEnv(constants.EnvCurieName, s.Curie.Name)
	s.Curie.Href = GetEnv(constants.EnvCurieHref, s.Curie.Href)

	if names := GetEnv(constants.EnvTypes, ""); names != "" {
		types, err := hypermedia.ParseTypes(strings.Split(names, ","))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", constants.EnvTypes, err)
		}
		s.Types = types
	}
	if v := GetEnv(constants.EnvDisablePluralization, ""); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", constants.EnvDisablePluralization, err)
		}
		s.DisablePluralization = disabled
	}

	s.DB.Host = GetEnv(constants.EnvDBHost, s.DB.Host)
	s.DB.User = GetEnv(constants.EnvDBUser, s.DB.User)
	s.DB.Password = GetEnv(constants.EnvDBPassword, s.DB.Password)
	s.DB.DBName = GetEnv(constants.EnvDBName, s.DB.DBName)
	if port := GetEnv(constants.EnvDBPort, ""); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", constants.EnvDBPort, err)
		}
		s.DB.Port = p
	}
	if mode := GetEnv(constants.EnvDBSSLMode, ""); mode != "" {
		enabled := mode != "disable"
		s.DB.SSLEnabled = &enabled
	}
	return nil
}
