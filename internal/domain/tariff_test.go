package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TurfManager/pkg/ptr"
)

var (
	saturday = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
)

func TestTariff_PackageOverridesDayOfWeek(t *testing.T) {
	tariff := Tariff{
		BasePrice:    500,
		Price2h:      ptr.Ptr(900.0),
		WeekendPrice: ptr.Ptr(600.0),
	}

	for _, day := range []time.Time{saturday, sunday, tuesday} {
		assert.Equal(t, 900.0, tariff.Price(2, day), day.Weekday().String())
	}
}

func TestTariff_WeekendFallback(t *testing.T) {
	tariff := Tariff{
		BasePrice:    500,
		WeekendPrice: ptr.Ptr(700.0),
	}

	assert.Equal(t, 700.0, tariff.Price(1, saturday))
	assert.Equal(t, 500.0, tariff.Price(1, tuesday))
	assert.Equal(t, 1400.0, tariff.Price(2, sunday))
}

func TestTariff_Resolution(t *testing.T) {
	tariff := Tariff{
		BasePrice:    500,
		Price1h:      ptr.Ptr(450.0),
		Price3h:      ptr.Ptr(1300.0),
		WeekdayPrice: ptr.Ptr(400.0),
		WeekendPrice: ptr.Ptr(650.0),
	}

	tests := []struct {
		name     string
		duration int
		date     time.Time
		want     float64
	}{
		{name: "1h package", duration: 1, date: saturday, want: 450},
		{name: "2h weekday hourly", duration: 2, date: tuesday, want: 800},
		{name: "2h weekend hourly", duration: 2, date: saturday, want: 1300},
		{name: "3h package", duration: 3, date: tuesday, want: 1300},
		{name: "4h never has a package", duration: 4, date: tuesday, want: 1600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tariff.Price(tt.duration, tt.date))
		})
	}
}

func TestTariff_BaseOnly(t *testing.T) {
	tariff := Tariff{BasePrice: 500}
	assert.Equal(t, 2000.0, tariff.Price(4, saturday))
	assert.Equal(t, 500.0, tariff.Price(1, tuesday))
}
