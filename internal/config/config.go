// Package config provides functionality for managing configuration
// options for the application using command-line flags and environment
// variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string

	// DatabaseDSN holds the PostgreSQL connection string. When empty,
	// the flat-file store is used instead.
	DatabaseDSN string

	// StorePath is the path of the JSON file backing the default store.
	StorePath string

	// JWTSecret signs the bearer tokens. The default is only suitable
	// for local development.
	JWTSecret string

	// BcryptCost is the bcrypt cost factor for password hashing.
	// Zero means the library default.
	BcryptCost int

	// WebDir is the directory holding the static browser client.
	WebDir string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "postgres dsn (empty: use the json file store)")
	flag.StringVar(&options.StorePath, "f", "db.json", "path of the json file store")
	flag.StringVar(&options.JWTSecret, "k", "dev-secret", "jwt signing secret")
	flag.IntVar(&options.BcryptCost, "b", 0, "bcrypt cost factor (0: library default)")
	flag.StringVar(&options.WebDir, "w", "web", "directory with the static browser client")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct
// containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if storePath := os.Getenv("FILE_STORAGE_PATH"); storePath != "" {
		options.StorePath = storePath
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if webDir := os.Getenv("WEB_DIR"); webDir != "" {
		options.WebDir = webDir
	}

	return options
}
