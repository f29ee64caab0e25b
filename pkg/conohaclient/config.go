package conohaclient

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/conoha-io/conoha-go/pkg/conoha"
)

// fileConfig is the YAML shape of a config file.
type fileConfig struct {
	Username   string            `yaml:"username"`
	UserID     string            `yaml:"user_id"`
	Password   string            `yaml:"password"`
	TenantID   string            `yaml:"tenant_id"`
	TenantName string            `yaml:"tenant_name"`
	Token      string            `yaml:"token"`
	Region     string            `yaml:"region"`
	Timeout    int               `yaml:"timeout"`
	Endpoints  map[string]string `yaml:"endpoints"`
	Debug      bool              `yaml:"debug"`
	UserAgent  string            `yaml:"user_agent"`
}

// LoadConfig reads a YAML config file into a conoha.Config. Environment
// variables fill fields the file leaves empty: CONOHA_USERNAME,
// CONOHA_PASSWORD, CONOHA_TENANT_ID, CONOHA_REGION and CONOHA_TOKEN.
func LoadConfig(path string) (*conoha.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var file fileConfig

	err = yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	config := &conoha.Config{
		Username:   file.Username,
		UserID:     file.UserID,
		Password:   file.Password,
		TenantID:   file.TenantID,
		TenantName: file.TenantName,
		Token:      file.Token,
		Region:     file.Region,
		Timeout:    file.Timeout,
		Endpoints:  file.Endpoints,
		Debug:      file.Debug,
		UserAgent:  file.UserAgent,
	}

	fillFromEnv(config)

	return config, nil
}

func fillFromEnv(config *conoha.Config) {
	if config.Username == "" {
		config.Username = os.Getenv("CONOHA_USERNAME")
	}

	if config.Password == "" {
		config.Password = os.Getenv("CONOHA_PASSWORD")
	}

	if config.TenantID == "" {
		config.TenantID = os.Getenv("CONOHA_TENANT_ID")
	}

	if config.Region == "" {
		config.Region = os.Getenv("CONOHA_REGION")
	}

	if config.Token == "" {
		config.Token = os.Getenv("CONOHA_TOKEN")
	}
}
