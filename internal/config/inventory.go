package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// InventoryConfig tunes input coercion and seed-independent defaults.
type InventoryConfig struct {
	// StrictInput rejects malformed price/stock/date values instead of
	// silently falling back to defaults. Absent values always take the
	// default regardless of this flag.
	StrictInput bool `mapstructure:"strictInput"`

	// DefaultReorderLevel is applied when a product form omits the field.
	DefaultReorderLevel int `mapstructure:"defaultReorderLevel"`
}

func DefaultInventoryConfig() InventoryConfig {
	return InventoryConfig{
		StrictInput:         true,
		DefaultReorderLevel: 0,
	}
}

type InventoryConfigHolder struct {
	current atomic.Value // holds InventoryConfig
}

func NewInventoryConfigHolder() (*InventoryConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("inventory")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/stockroom/config") // Volume-mounted config
	v.AddConfigPath("/etc/stockroom")            // System config
	v.AddConfigPath(".")                         // Current directory (dev mode)

	v.SetEnvPrefix("STOCKROOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultInventoryConfig()
		v.SetDefault("inventory.strictInput", defaults.StrictInput)
		v.SetDefault("inventory.defaultReorderLevel", defaults.DefaultReorderLevel)
	}

	var cfg InventoryConfig
	if err := v.UnmarshalKey("inventory", &cfg); err != nil {
		return nil, err
	}
	if err := validateInventoryConfig(cfg); err != nil {
		return nil, err
	}

	holder := &InventoryConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated InventoryConfig
		if err := v.UnmarshalKey("inventory", &updated); err != nil {
			log.Printf("[inventory-config] reload failed: %v", err)
			return
		}
		if err := validateInventoryConfig(updated); err != nil {
			log.Printf("[inventory-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[inventory-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticInventoryConfigHolder wraps a fixed config without file watching.
func NewStaticInventoryConfigHolder(cfg InventoryConfig) *InventoryConfigHolder {
	holder := &InventoryConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *InventoryConfigHolder) Get() InventoryConfig {
	return h.current.Load().(InventoryConfig)
}

func validateInventoryConfig(cfg InventoryConfig) error {
	if cfg.DefaultReorderLevel < 0 {
		return errors.New("inventory.defaultReorderLevel cannot be negative")
	}
	return nil
}
