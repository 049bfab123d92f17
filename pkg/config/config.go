package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Input data
	DataDir            string `mapstructure:"DATA_DIR"`
	PlayersFile        string `mapstructure:"PLAYERS_FILE"`
	PositionUpdatesCSV string `mapstructure:"POSITION_UPDATES_CSV"`
	TeamRulesFile      string `mapstructure:"TEAM_RULES_FILE"`
	RoundsFile         string `mapstructure:"ROUNDS_FILE"`
	DataFilterFile     string `mapstructure:"DATA_FILTER_FILE"`

	// Output
	SolutionFile   string `mapstructure:"SOLUTION_FILE"`
	ReportFile     string `mapstructure:"REPORT_FILE"`
	WriteMarkdown  bool   `mapstructure:"WRITE_MARKDOWN"`

	// Solver
	SolverBackend          string `mapstructure:"SOLVER_BACKEND"`
	SolverTimeLimitSeconds int    `mapstructure:"SOLVER_TIME_LIMIT_SECONDS"`
	SolverVerbose          bool   `mapstructure:"SOLVER_VERBOSE"`

	// Loading behavior
	StrictNameMatching bool `mapstructure:"STRICT_NAME_MATCHING"`
	IncludeRound0      bool `mapstructure:"INCLUDE_ROUND0"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8083")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("PLAYERS_FILE", "players_final.json")
	viper.SetDefault("POSITION_UPDATES_CSV", "position_updates.csv")
	viper.SetDefault("TEAM_RULES_FILE", "team_rules.json")
	viper.SetDefault("ROUNDS_FILE", "rounds.json")
	viper.SetDefault("DATA_FILTER_FILE", "")
	viper.SetDefault("SOLUTION_FILE", "solution.json")
	viper.SetDefault("REPORT_FILE", "solution.md")
	viper.SetDefault("WRITE_MARKDOWN", true)
	viper.SetDefault("SOLVER_BACKEND", "auto")
	viper.SetDefault("SOLVER_TIME_LIMIT_SECONDS", 0)
	viper.SetDefault("SOLVER_VERBOSE", false)
	viper.SetDefault("STRICT_NAME_MATCHING", true)
	viper.SetDefault("INCLUDE_ROUND0", false)

	viper.AutomaticEnv()

	// Read config file if present (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks settings that would otherwise fail deep inside the pipeline.
func (c *Config) Validate() error {
	switch strings.ToLower(c.SolverBackend) {
	case "auto", "cbc", "gurobi":
	default:
		return fmt.Errorf("invalid SOLVER_BACKEND %q (expected auto, cbc or gurobi)", c.SolverBackend)
	}
	if c.SolverTimeLimitSeconds < 0 {
		return fmt.Errorf("SOLVER_TIME_LIMIT_SECONDS must be >= 0, got %d", c.SolverTimeLimitSeconds)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
