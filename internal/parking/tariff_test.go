package parking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var tariffBase = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func TestBilledHours(t *testing.T) {
	cases := []struct {
		name string
		dur  time.Duration
		want int64
	}{
		{"zero duration", 0, 0},
		{"negative duration", -time.Hour, 0},
		{"one minute rounds up", time.Minute, 1},
		{"exactly one hour", time.Hour, 1},
		{"one hour one minute", time.Hour + time.Minute, 2},
		{"one hour one second", time.Hour + time.Second, 2},
		{"two hours exact", 2 * time.Hour, 2},
		{"just under a day", 24*time.Hour - time.Second, 24},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BilledHours(tariffBase, tariffBase.Add(tc.dur))
			if got != tc.want {
				t.Errorf("BilledHours(%v) = %d, want %d", tc.dur, got, tc.want)
			}
		})
	}
}

func TestTariffCharge(t *testing.T) {
	tariff := Tariff{HourlyRate: decimal.RequireFromString("5.00")}

	cases := []struct {
		name string
		dur  time.Duration
		want string
	}{
		{"zero duration bills zero", 0, "0"},
		{"clock skew bills zero, never negative", -30 * time.Minute, "0"},
		{"one minute bills a full hour", time.Minute, "5.00"},
		{"one hour one minute bills two hours", time.Hour + time.Minute, "10.00"},
		{"three full hours", 3 * time.Hour, "15.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tariff.Charge(tariffBase, tariffBase.Add(tc.dur))
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("Charge(%v) = %s, want %s", tc.dur, got, tc.want)
			}
		})
	}
}

func TestTariffCharge_BaseFee(t *testing.T) {
	tariff := Tariff{
		HourlyRate: decimal.RequireFromString("5.00"),
		BaseFee:    decimal.RequireFromString("2.50"),
	}

	// The flat fee applies on top of any billed stay.
	got := tariff.Charge(tariffBase, tariffBase.Add(time.Minute))
	if want := decimal.RequireFromString("7.50"); !got.Equal(want) {
		t.Errorf("Charge with base fee = %s, want %s", got, want)
	}

	// A zero-duration stay bills nothing at all.
	got = tariff.Charge(tariffBase, tariffBase)
	if !got.IsZero() {
		t.Errorf("Charge of zero-duration stay = %s, want 0", got)
	}
}

func TestTariffCharge_Monotonic(t *testing.T) {
	tariff := Tariff{HourlyRate: decimal.RequireFromString("7.25")}

	prev := decimal.Zero
	for _, dur := range []time.Duration{
		0, time.Second, time.Minute, 30 * time.Minute,
		time.Hour, 90 * time.Minute, 2 * time.Hour, 5 * time.Hour,
	} {
		charge := tariff.Charge(tariffBase, tariffBase.Add(dur))
		if charge.LessThan(prev) {
			t.Errorf("charge decreased at duration %v: %s < %s", dur, charge, prev)
		}
		prev = charge
	}
}

func TestTariffCharge_Deterministic(t *testing.T) {
	tariff := Tariff{HourlyRate: decimal.RequireFromString("5.00")}
	exit := tariffBase.Add(95 * time.Minute)

	first := tariff.Charge(tariffBase, exit)
	for i := 0; i < 10; i++ {
		if got := tariff.Charge(tariffBase, exit); !got.Equal(first) {
			t.Fatalf("charge not reproducible: %s != %s", got, first)
		}
	}
}
