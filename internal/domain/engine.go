package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

var (
	ErrUnknownEngineKind = errors.New("domain: unknown engine kind")
	ErrInvalidEngine     = errors.New("domain: invalid engine config")
)

// EngineKind tag of an engagement engine
type EngineKind string

const (
	EngineScarcity    EngineKind = "scarcity"
	EngineCountdown   EngineKind = "countdown"
	EngineScratchCard EngineKind = "scratch_card"
	EngineLoyalty     EngineKind = "loyalty"
	EngineABPromo     EngineKind = "ab_promo"
)

// EngineConfig typed configuration of one engine kind
type EngineConfig interface {
	Kind() EngineKind
	Validate() error
}

// Engine per-venue engagement widget toggle with its configuration
type Engine struct {
	VenueID   int64
	Kind      EngineKind
	Enabled   bool
	Config    EngineConfig
	UpdatedAt time.Time
}

// ScarcityConfig shows a "only N slots left" banner when few slots remain
type ScarcityConfig struct {
	Threshold int    `json:"threshold"`
	Message   string `json:"message"`
}

func (ScarcityConfig) Kind() EngineKind { return EngineScarcity }

func (c ScarcityConfig) Validate() error {
	if c.Threshold < 1 {
		return fmt.Errorf("%w: scarcity threshold must be positive", ErrInvalidEngine)
	}
	return nil
}

// CountdownConfig counts down to the next available slot if it starts within the window
type CountdownConfig struct {
	WindowMinutes int    `json:"window_minutes"`
	Message       string `json:"message"`
}

func (CountdownConfig) Kind() EngineKind { return EngineCountdown }

func (c CountdownConfig) Validate() error {
	if c.WindowMinutes < 1 {
		return fmt.Errorf("%w: countdown window must be positive", ErrInvalidEngine)
	}
	return nil
}

// ScratchCardConfig discount revealed to a visitor
type ScratchCardConfig struct {
	DiscountPercent int     `json:"discount_percent"`
	MaxDiscount     float64 `json:"max_discount"`
	PromoCode       string  `json:"promo_code"`
}

func (ScratchCardConfig) Kind() EngineKind { return EngineScratchCard }

func (c ScratchCardConfig) Validate() error {
	if c.DiscountPercent < 1 || c.DiscountPercent > 100 {
		return fmt.Errorf("%w: discount percent must be in 1..100", ErrInvalidEngine)
	}
	if c.MaxDiscount < 0 {
		return fmt.Errorf("%w: max discount must not be negative", ErrInvalidEngine)
	}
	return nil
}

// LoyaltyConfig progress towards a reward after N completed bookings
type LoyaltyConfig struct {
	BookingsForReward int    `json:"bookings_for_reward"`
	Reward            string `json:"reward"`
}

func (LoyaltyConfig) Kind() EngineKind { return EngineLoyalty }

func (c LoyaltyConfig) Validate() error {
	if c.BookingsForReward < 1 {
		return fmt.Errorf("%w: bookings for reward must be positive", ErrInvalidEngine)
	}
	return nil
}

// ABPromoConfig two promo texts split between visitors
type ABPromoConfig struct {
	VariantA     string `json:"variant_a"`
	VariantB     string `json:"variant_b"`
	SplitPercent int    `json:"split_percent"` // доля посетителей, видящих вариант A
}

func (ABPromoConfig) Kind() EngineKind { return EngineABPromo }

func (c ABPromoConfig) Validate() error {
	if c.VariantA == "" || c.VariantB == "" {
		return fmt.Errorf("%w: both promo variants are required", ErrInvalidEngine)
	}
	if c.SplitPercent < 0 || c.SplitPercent > 100 {
		return fmt.Errorf("%w: split percent must be in 0..100", ErrInvalidEngine)
	}
	return nil
}

// DecodeEngineConfig decodes the stored JSON config of the given kind
func DecodeEngineConfig(kind EngineKind, raw []byte) (EngineConfig, error) {
	var (
		cfg EngineConfig
		err error
	)

	switch kind {
	case EngineScarcity:
		var c ScarcityConfig
		err = json.Unmarshal(raw, &c)
		cfg = c
	case EngineCountdown:
		var c CountdownConfig
		err = json.Unmarshal(raw, &c)
		cfg = c
	case EngineScratchCard:
		var c ScratchCardConfig
		err = json.Unmarshal(raw, &c)
		cfg = c
	case EngineLoyalty:
		var c LoyaltyConfig
		err = json.Unmarshal(raw, &c)
		cfg = c
	case EngineABPromo:
		var c ABPromoConfig
		err = json.Unmarshal(raw, &c)
		cfg = c
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngineKind, kind)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidEngine, kind, err)
	}
	return cfg, nil
}

// EncodeEngineConfig encodes the config for storage
func EncodeEngineConfig(cfg EngineConfig) ([]byte, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidEngine, cfg.Kind(), err)
	}
	return raw, nil
}
