/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config holds the explicit configuration passed into each component
// constructor at process start. There is no ambient global state: callers
// load a Config once and hand it to the store and workflow constructors.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config names every external resource the core talks to.
type Config struct {
	// AWS connection settings. EndpointURL is optional and points the SDK
	// clients at a local emulator when set.
	Region      string `yaml:"region"`
	AccessKey   string `yaml:"accessKey"`
	SecretKey   string `yaml:"secretKey"`
	EndpointURL string `yaml:"endpointUrl"`

	// Entity collections, one table per entity type.
	CustomerTable string `yaml:"customerTable"`
	ProductTable  string `yaml:"productTable"`
	OrderTable    string `yaml:"orderTable"`

	// Blob containers, one per attachment class.
	ImageContainer    string `yaml:"imageContainer"`
	ContractContainer string `yaml:"contractContainer"`

	// Notification queues, one per domain.
	CustomerQueue  string `yaml:"customerQueue"`
	OrderQueue     string `yaml:"orderQueue"`
	InventoryQueue string `yaml:"inventoryQueue"`
}

// Load reads configuration from the environment, consulting a .env file
// first when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		Region:            os.Getenv("AWS_REGION"),
		AccessKey:         os.Getenv("AWS_ACCESS_KEY"),
		SecretKey:         os.Getenv("AWS_SECRET_KEY"),
		EndpointURL:       os.Getenv("AWS_ENDPOINT_URL"),
		CustomerTable:     os.Getenv("RETAIL_CUSTOMER_TABLE"),
		ProductTable:      os.Getenv("RETAIL_PRODUCT_TABLE"),
		OrderTable:        os.Getenv("RETAIL_ORDER_TABLE"),
		ImageContainer:    os.Getenv("RETAIL_IMAGE_CONTAINER"),
		ContractContainer: os.Getenv("RETAIL_CONTRACT_CONTAINER"),
		CustomerQueue:     os.Getenv("RETAIL_CUSTOMER_QUEUE"),
		OrderQueue:        os.Getenv("RETAIL_ORDER_QUEUE"),
		InventoryQueue:    os.Getenv("RETAIL_INVENTORY_QUEUE"),
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFile reads configuration from a YAML file, filling blanks with
// defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills blank resource names with the standard layout.
func (c *Config) applyDefaults() {
	if c.CustomerTable == "" {
		c.CustomerTable = "CustomerProfiles"
	}
	if c.ProductTable == "" {
		c.ProductTable = "Products"
	}
	if c.OrderTable == "" {
		c.OrderTable = "Orders"
	}
	if c.ImageContainer == "" {
		c.ImageContainer = "productimages"
	}
	if c.ContractContainer == "" {
		c.ContractContainer = "contracts"
	}
	if c.CustomerQueue == "" {
		c.CustomerQueue = "customerqueue"
	}
	if c.OrderQueue == "" {
		c.OrderQueue = "orderqueue"
	}
	if c.InventoryQueue == "" {
		c.InventoryQueue = "inventoryqueue"
	}
}
