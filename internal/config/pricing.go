package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingPolicy tunes the pricing and validation engines at runtime.
type PricingPolicy struct {
	// EnforceCurrency rejects option values and add-ons priced in a currency
	// other than the plan's. Off keeps the permissive pass-through.
	EnforceCurrency bool          `mapstructure:"enforce_currency"`
	CatalogCacheTTL time.Duration `mapstructure:"catalog_cache_ttl"`
}

func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		EnforceCurrency: false,
		CatalogCacheTTL: 5 * time.Minute,
	}
}

type PricingPolicyHolder struct {
	current atomic.Value // holds PricingPolicy
}

// NewStaticPricingPolicy returns a holder that never reloads.
func NewStaticPricingPolicy(policy PricingPolicy) *PricingPolicyHolder {
	holder := &PricingPolicyHolder{}
	holder.current.Store(policy)
	return holder
}

func NewPricingPolicyHolder(cfg Config) (*PricingPolicyHolder, error) {
	v := viper.New()

	if cfg.PricingConfigPath != "" {
		v.SetConfigFile(cfg.PricingConfigPath)
	} else {
		v.SetConfigName("pricing")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/estimator")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ESTIMATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPricingPolicy()
	v.SetDefault("pricing.enforce_currency", defaults.EnforceCurrency)
	v.SetDefault("pricing.catalog_cache_ttl", defaults.CatalogCacheTTL)

	loaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		loaded = false
	}

	policy := DefaultPricingPolicy()
	if err := v.UnmarshalKey("pricing", &policy); err != nil {
		return nil, err
	}
	if err := validatePricingPolicy(policy); err != nil {
		return nil, err
	}

	holder := NewStaticPricingPolicy(policy)
	if !loaded {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated := DefaultPricingPolicy()
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingPolicy(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *PricingPolicyHolder) Get() PricingPolicy {
	if h == nil {
		return DefaultPricingPolicy()
	}
	return h.current.Load().(PricingPolicy)
}

func validatePricingPolicy(policy PricingPolicy) error {
	if policy.CatalogCacheTTL < 0 {
		return errors.New("pricing.catalog_cache_ttl cannot be negative")
	}
	return nil
}
