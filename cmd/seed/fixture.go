package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Customers []customerEntry `yaml:"customers"`
}

type customerEntry struct {
	Name          string          `yaml:"name"`
	ContactNumber string          `yaml:"contact_number"`
	WalletBalance decimal.Decimal `yaml:"wallet_balance"`
	Purchases     []purchaseEntry `yaml:"purchases"`
}

type purchaseEntry struct {
	Amount     decimal.Decimal `yaml:"amount"`
	WalletUsed decimal.Decimal `yaml:"wallet_used"`
}

func loadSeedFromYAML(path string) ([]customerEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return parseSeed(data)
}

func parseSeed(data []byte) ([]customerEntry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal seed yaml: %w", err)
	}

	for i := range file.Customers {
		entry := &file.Customers[i]
		entry.Name = strings.TrimSpace(entry.Name)
		entry.ContactNumber = strings.TrimSpace(entry.ContactNumber)

		if entry.Name == "" {
			return nil, fmt.Errorf("customers[%d]: name is required", i)
		}
		if entry.ContactNumber == "" {
			return nil, fmt.Errorf("customers[%d]: contact_number is required", i)
		}
		for j, p := range entry.Purchases {
			if !p.Amount.IsPositive() {
				return nil, fmt.Errorf("customers[%d].purchases[%d]: amount must be positive", i, j)
			}
		}
	}

	return file.Customers, nil
}
