package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/CIDgravity/snakelet"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// config structure
type Config struct {
	API     APIConfig     `mapstructure:"API"`
	Github  GithubConfig  `mapstructure:"GITHUB"`
	Panel   PanelConfig   `mapstructure:"PANEL"`
	Tasks   TasksConfig   `mapstructure:"TASKS"`
	Logs    LogsConfig    `mapstructure:"LOGS"`
	Profile ProfileConfig `mapstructure:"PROFILE"`
	Hero    HeroConfig    `mapstructure:"HERO"`
}

type APIConfig struct {
	ListenPort string `mapstructure:"ListenPort"`
}

type GithubConfig struct {
	Token string `mapstructure:"Token"`

	// BaseURL is only set to target a GitHub Enterprise instance
	BaseURL string `mapstructure:"BaseURL"`

	// ListPageSize is the number of repositories requested to github before sorting locally
	ListPageSize int `mapstructure:"ListPageSize"`
}

type PanelConfig struct {
	Account string `mapstructure:"Account"`
	Limit   int    `mapstructure:"Limit"`
	Locale  string `mapstructure:"Locale"` // en | tr
}

type TasksConfig struct {
	MaxParallelTasksAllowed int `mapstructure:"MaxParallelTasksAllowed"`
}

type LogsConfig struct {
	Level            string `mapstructure:"Level"` // error | warn | info | debug - case insensitive
	OutputLogsAsJSON bool   `mapstructure:"OutputLogsAsJson"`
}

type ProfileConfig struct {
	Name      string `mapstructure:"Name"`
	Title     string `mapstructure:"Title"`
	AvatarURL string `mapstructure:"AvatarURL"`
	XURL      string `mapstructure:"XURL"`
	GithubURL string `mapstructure:"GithubURL"`
	Email     string `mapstructure:"Email"`
}

type HeroConfig struct {
	Heading       string   `mapstructure:"Heading"`
	Description   string   `mapstructure:"Description"`
	ButtonText    string   `mapstructure:"ButtonText"`
	ButtonURL     string   `mapstructure:"ButtonURL"`
	ReviewCount   int      `mapstructure:"ReviewCount"`
	ReviewAvatars []string `mapstructure:"ReviewAvatars"`
}

// Load reads the config file next to the binary (or in the working directory)
// on top of the defaults, then applies environment overrides.
// An explicit path takes precedence over the lookup.
func Load(explicitPath string) (*Config, error) {
	configFilePath, err := resolvePath(explicitPath)
	if err != nil {
		return nil, err
	}

	// .env is optional, variables already set in the environment win
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	// load default and config file content
	cfg := GetDefault()
	_, err = snakelet.InitAndLoad(cfg, configFilePath)

	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	return cfg, nil
}

func resolvePath(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", err
		}

		return explicitPath, nil
	}

	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))

	if err != nil {
		return "", err
	}

	// check config file exists
	configFilePath := dir + "/config/config.toml"

	if _, err := os.Stat(configFilePath); errors.Is(err, os.ErrNotExist) {
		if _, err := os.Stat("config/config.toml"); errors.Is(err, os.ErrNotExist) {
			return "", err
		}

		configFilePath = "config/config.toml"
	}

	return configFilePath, nil
}

// ApplyEnv overrides secrets and the displayed account from the environment
func (c *Config) ApplyEnv() {
	if token := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); token != "" {
		c.Github.Token = token
	}

	if account := strings.TrimSpace(os.Getenv("PORTFOLIO_ACCOUNT")); account != "" {
		c.Panel.Account = account
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		c.API.ListenPort = port
	}
}

// GetDefault
func GetDefault() *Config {
	return &Config{
		API: APIConfig{
			ListenPort: "5000",
		},
		Github: GithubConfig{
			ListPageSize: 10,
		},
		Panel: PanelConfig{
			Account: "rasperon",
			Limit:   4,
			Locale:  "en",
		},
		Tasks: TasksConfig{
			MaxParallelTasksAllowed: 8,
		},
		Logs: LogsConfig{
			Level:            "debug",
			OutputLogsAsJSON: false,
		},
		Profile: ProfileConfig{
			Name:      "Rasperon",
			Title:     "Backend Developer",
			GithubURL: "https://github.com/rasperon",
			Email:     "rasperon@proton.me",
		},
		Hero: HeroConfig{
			Heading:     "A Collection of Components Built With Shadcn & Tailwind",
			Description: "Im a backend developer and security penetration testing.",
			ButtonText:  "Discover all components",
			ButtonURL:   "https://www.shadcnblocks.com",
			ReviewCount: 200,
			ReviewAvatars: []string{
				"https://www.shadcnblocks.com/images/block/avatar-1.webp",
				"https://www.shadcnblocks.com/images/block/avatar-2.webp",
				"https://www.shadcnblocks.com/images/block/avatar-3.webp",
				"https://www.shadcnblocks.com/images/block/avatar-4.webp",
				"https://www.shadcnblocks.com/images/block/avatar-5.webp",
			},
		},
	}
}
