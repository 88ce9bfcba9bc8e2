package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
}

type AppConfig struct {
	Env string
}

// StorageConfig locates the four flat data files.
type StorageConfig struct {
	Dir           string
	SellersFile   string
	CustomersFile string
	ProductsFile  string
	CartsFile     string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("SELLERS_FILE", "sellers.txt")
	viper.SetDefault("CUSTOMERS_FILE", "customers.txt")
	viper.SetDefault("PRODUCTS_FILE", "products.txt")
	viper.SetDefault("CARTS_FILE", "carts.txt")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		App: AppConfig{
			Env: viper.GetString("APP_ENV"),
		},
		Storage: StorageConfig{
			Dir:           viper.GetString("DATA_DIR"),
			SellersFile:   viper.GetString("SELLERS_FILE"),
			CustomersFile: viper.GetString("CUSTOMERS_FILE"),
			ProductsFile:  viper.GetString("PRODUCTS_FILE"),
			CartsFile:     viper.GetString("CARTS_FILE"),
		},
	}
}
