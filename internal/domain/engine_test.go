package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEngineConfig(t *testing.T) {
	cfg, err := DecodeEngineConfig(EngineScarcity, []byte(`{"threshold":3,"message":"Hurry up"}`))
	require.NoError(t, err)

	scarcity, ok := cfg.(ScarcityConfig)
	require.True(t, ok)
	assert.Equal(t, 3, scarcity.Threshold)
	assert.Equal(t, EngineScarcity, cfg.Kind())
}

func TestDecodeEngineConfig_UnknownKind(t *testing.T) {
	_, err := DecodeEngineConfig("lottery", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownEngineKind)
}

func TestDecodeEngineConfig_Malformed(t *testing.T) {
	_, err := DecodeEngineConfig(EngineLoyalty, []byte(`{"bookings_for_reward":"ten"}`))
	assert.ErrorIs(t, err, ErrInvalidEngine)
}

func TestEngineConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     EngineConfig
		wantErr bool
	}{
		{name: "scarcity ok", cfg: ScarcityConfig{Threshold: 2}},
		{name: "scarcity zero threshold", cfg: ScarcityConfig{}, wantErr: true},
		{name: "countdown ok", cfg: CountdownConfig{WindowMinutes: 90}},
		{name: "scratch card over 100", cfg: ScratchCardConfig{DiscountPercent: 120}, wantErr: true},
		{name: "loyalty ok", cfg: LoyaltyConfig{BookingsForReward: 5, Reward: "Free hour"}},
		{name: "ab promo missing variant", cfg: ABPromoConfig{VariantA: "10% off", SplitPercent: 50}, wantErr: true},
		{name: "ab promo ok", cfg: ABPromoConfig{VariantA: "a", VariantB: "b", SplitPercent: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEngine)
				return
			}
			assert.NoError(t, err)
		})
	}
}
