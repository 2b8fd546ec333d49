package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to csslab! Let's configure your lab.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:   "Port to listen on",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. Store.
	storePrompt := promptui.Select{
		Label: "Where should your progress be saved?",
		Items: []string{
			"sqlite — local file (recommended)",
			"redis  — an existing Redis server",
			"memory — nothing is saved between runs",
		},
	}
	storeIdx, _, err := storePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("store selection: %w", err)
	}
	cfg.Store = []StoreType{StoreSQLite, StoreRedis, StoreMemory}[storeIdx]

	// 3. Store details.
	switch cfg.Store {
	case StoreSQLite:
		dirPrompt := promptui.Prompt{
			Label:   "Data directory",
			Default: cfg.DataDir,
		}
		if cfg.DataDir, err = dirPrompt.Run(); err != nil {
			return nil, fmt.Errorf("data directory prompt: %w", err)
		}
	case StoreRedis:
		urlPrompt := promptui.Prompt{
			Label:   "Redis URL",
			Default: "redis://localhost:6379/0",
		}
		if cfg.RedisURL, err = urlPrompt.Run(); err != nil {
			return nil, fmt.Errorf("redis url prompt: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Println("Run `csslab serve` to open the lab.")
	return cfg, nil
}
