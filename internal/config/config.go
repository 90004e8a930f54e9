package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL    = "https://api.apper.io"
	DefaultGitLabURL  = "https://gitlab.com"
	DefaultListenAddr = ":8080"
	DefaultTimeout    = 30 * time.Second
)

type Config struct {
	ProjectID  string
	PublicKey  string
	BaseURL    string
	Timeout    time.Duration
	ListenAddr string

	GitLabToken    string
	GitLabURL      string
	ProjectPath    string
	MilestoneTitle *string
	ImportCategory int

	LogFormat string
	Verbose   bool
}

// Load lädt die Konfiguration; configFile ist optional (yaml, toml, json)
// und wird von Umgebungsvariablen überschrieben.
func Load(configFile string) (*Config, error) {
	// .env laden (ignoriere Fehler wenn Datei nicht existiert)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "⚠️  Warnung beim Laden der .env: %v\n", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("konfigurationsdatei %s nicht lesbar: %w", configFile, err)
		}
	}

	cfg := &Config{
		ProjectID:      v.GetString("apper_project_id"),
		PublicKey:      v.GetString("apper_public_key"),
		BaseURL:        v.GetString("apper_base_url"),
		Timeout:        v.GetDuration("apper_timeout"),
		ListenAddr:     v.GetString("listen_addr"),
		GitLabToken:    v.GetString("gitlab_token"),
		GitLabURL:      v.GetString("gitlab_url"),
		ProjectPath:    v.GetString("project_path"),
		ImportCategory: v.GetInt("import_category"),
		LogFormat:      strings.ToLower(v.GetString("log_format")),
		Verbose:        v.GetBool("verbose"),
	}

	// Optional: MILESTONE_TITLE
	if milestone := v.GetString("milestone_title"); milestone != "" {
		cfg.MilestoneTitle = &milestone
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("apper_base_url", DefaultBaseURL)
	v.SetDefault("apper_timeout", DefaultTimeout.String())
	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("gitlab_url", DefaultGitLabURL)
	v.SetDefault("import_category", 1)
	v.SetDefault("log_format", "text")
	v.SetDefault("verbose", false)
}

// PrintDebugInfo schreibt die geladene Konfiguration ohne Geheimnisse nach w
func (c *Config) PrintDebugInfo(w io.Writer) {
	fmt.Fprintf(w, "🔧 Configuration loaded:\n")
	fmt.Fprintf(w, "   Apper URL: %s\n", c.BaseURL)
	fmt.Fprintf(w, "   Has Project ID: %t\n", c.ProjectID != "")
	fmt.Fprintf(w, "   Has Public Key: %t (length: %d)\n", c.PublicKey != "", len(c.PublicKey))
	fmt.Fprintf(w, "   Timeout: %s\n", c.Timeout)
	fmt.Fprintf(w, "   Listen Addr: %s\n", c.ListenAddr)
	if c.ProjectPath != "" {
		fmt.Fprintf(w, "   GitLab Project: %s (%s)\n", c.ProjectPath, c.GitLabURL)
	}
	if c.MilestoneTitle != nil {
		fmt.Fprintf(w, "   Milestone Filter: %s\n", *c.MilestoneTitle)
	}
}

func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("Apper Projekt-ID fehlt (APPER_PROJECT_ID)")
	}
	if c.PublicKey == "" {
		return fmt.Errorf("Apper Public Key fehlt (APPER_PUBLIC_KEY)")
	}
	return nil
}

// ValidateGitLab prüft zusätzlich die Angaben für den GitLab-Import
func (c *Config) ValidateGitLab() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.GitLabToken == "" {
		return fmt.Errorf("GitLab Token fehlt (GITLAB_TOKEN)")
	}
	if c.ProjectPath == "" {
		return fmt.Errorf("GitLab Projekt-Pfad fehlt (PROJECT_PATH)")
	}
	return nil
}

func (c *Config) GetBaseURL() string {
	return strings.TrimSuffix(c.BaseURL, "/")
}

func (c *Config) GetGitLabBaseURL() string {
	return strings.TrimSuffix(c.GitLabURL, "/")
}
