package stateregistry

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	assert.Equal(t, 0, r.Len())

	infil, err := r.Register(ZoneAddress("zone", "infiltration"), KindInfiltration, 0.01)
	require.NoError(t, err)
	heater, err := r.Register(IndexedZoneAddress("zone", "heater", 0), KindHeaterPower, 1500)
	require.NoError(t, err)

	assert.Equal(t, 0, infil.Index)
	assert.Equal(t, 1, heater.Index)
	assert.Equal(t, "zone.heater[0]", heater.Name())
	assert.Equal(t, 2, r.Len())

	found, ok := r.Lookup("zone.infiltration")
	require.True(t, ok)
	assert.Equal(t, infil, found)

	_, ok = r.Lookup("zone.luminaire[0]")
	assert.False(t, ok)

	v, err := r.Value(heater.Index)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, v)
}

func TestRegister_Errors(t *testing.T) {
	r := New()
	_, err := r.Register(ZoneAddress("zone", "infiltration"), KindInfiltration, 0)
	require.NoError(t, err)

	_, err = r.Register(ZoneAddress("zone", "infiltration"), KindInfiltration, 1)
	assert.ErrorIs(t, err, ErrDuplicateVariable)

	_, err = r.Register(Address{}, KindHeaterPower, 1)
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = r.Register(ZoneAddress("east wing", "heater"), KindHeaterPower, 1)
	assert.ErrorIs(t, err, ErrInvalidAddress, "names that cannot be looked up are rejected")

	_, err = r.Register(IndexedZoneAddress("zone", "heater", 0), KindHeaterPower, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidValue)

	assert.Equal(t, 1, r.Len(), "failed registrations must not add entries")
}

func TestLookup_ParsesName(t *testing.T) {
	r := New()
	heater, err := r.Register(IndexedZoneAddress("zone", "heater", 1), KindHeaterPower, 500)
	require.NoError(t, err)

	testCases := []struct {
		name      string
		lookup    string
		expectHit bool
	}{
		{name: "canonical", lookup: "zone.heater[1]", expectHit: true},
		{name: "leading zero index", lookup: "zone.heater[01]", expectHit: true},
		{name: "other index", lookup: "zone.heater[2]"},
		{name: "missing index", lookup: "zone.heater"},
		{name: "malformed", lookup: "zone..heater[1]"},
		{name: "empty", lookup: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := r.Lookup(tc.lookup)
			require.Equal(t, tc.expectHit, ok)
			if tc.expectHit {
				assert.Equal(t, heater, got)
			}
		})
	}
}

func TestRegistry_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := New(WithLogger(logger))

	_, err := r.Register(ZoneAddress("zone", "infiltration"), KindInfiltration, 0)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Registering state variable.")
	assert.Contains(t, buf.String(), "name=zone.infiltration")
}

func TestSetValue(t *testing.T) {
	r := New()
	v, err := r.Register(ZoneAddress("zone", "infiltration"), KindInfiltration, 0.02)
	require.NoError(t, err)

	require.NoError(t, r.SetValue(v.Index, 0.05))
	got, err := r.Value(v.Index)
	require.NoError(t, err)
	assert.Equal(t, 0.05, got)

	assert.ErrorIs(t, r.SetValue(7, 1), ErrUnknownVariable)
	assert.ErrorIs(t, r.SetValue(v.Index, math.Inf(1)), ErrInvalidValue)
	_, err = r.Value(-1)
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

func TestVariablesAndValuesAreCopies(t *testing.T) {
	r := New()
	_, err := r.Register(ZoneAddress("zone", "infiltration"), KindInfiltration, 0.1)
	require.NoError(t, err)

	vars := r.Variables()
	vals := r.Values()
	vars[0].Index = 99
	vals[0] = 99

	assert.Equal(t, 0, r.Variables()[0].Index)
	assert.Equal(t, []float64{0.1}, r.Values())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "infiltration", KindInfiltration.String())
	assert.Equal(t, "m3/s", KindInfiltration.Unit())
	assert.Equal(t, "W", KindLuminairePower.Unit())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

// TestRegistry_ConcurrentAccess lets an engine read and drive values while
// another goroutine registers new variables.
func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New()
	base, err := r.Register(ZoneAddress("zone", "infiltration"), KindInfiltration, 0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := r.Register(IndexedZoneAddress("zone", "heater", i), KindHeaterPower, float64(i))
			assert.NoError(t, err)
		}(i)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, r.SetValue(base.Index, float64(i)))
			_, err := r.Value(base.Index)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 51, r.Len())
	for i := 0; i < 50; i++ {
		v, ok := r.Lookup(fmt.Sprintf("zone.heater[%d]", i))
		require.True(t, ok)
		val, err := r.Value(v.Index)
		require.NoError(t, err)
		assert.Equal(t, float64(i), val)
	}
}
