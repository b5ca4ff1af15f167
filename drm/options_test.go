package drm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLayerType(t *testing.T) {
	for s, want := range map[string]LayerType{"PML": PML, "Rayleigh": Rayleigh, "ASDA": ASDA} {
		lt, err := ParseLayerType(s)
		assert.NoError(t, err)
		assert.Equal(t, want, lt)
		assert.Equal(t, s, lt.String())
	}
	_, err := ParseLayerType("pml")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseGeometry(t *testing.T) {
	g, err := ParseGeometry("Rectangular")
	assert.NoError(t, err)
	assert.Equal(t, Rectangular, g)
	g, err = ParseGeometry("Cylindrical")
	assert.NoError(t, err)
	assert.Equal(t, Cylindrical, g)
	_, err = ParseGeometry("Spherical")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultAbsorbingLayerOptions(3, 2, PML)
	assert.Equal(t, 3, opts.NumLayers)
	assert.Equal(t, 2, opts.NumPartitions)
	assert.Equal(t, 0.95, opts.RayleighDamping)
	assert.False(t, opts.MatchDamping)
	assert.NoError(t, opts.validate())
}

func TestProgressReporter(t *testing.T) {
	var got []float64
	p := &progressReporter{fn: func(pct float64, phase string) {
		got = append(got, pct)
	}}
	p.report(10, "a")
	p.report(5, "b")   // clamped up
	p.report(120, "c") // clamped down
	assert.Equal(t, []float64{10, 10, 100}, got)

	// a panicking callback never breaks the pipeline
	p = &progressReporter{fn: func(pct float64, phase string) { panic("boom") }}
	assert.NotPanics(t, func() { p.report(50, "a") })

	// nil callbacks are fine
	p = &progressReporter{}
	p.report(50, "a")
}
