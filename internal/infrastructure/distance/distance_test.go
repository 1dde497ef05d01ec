package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractICAO(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "exact code", text: "SBSP", want: "SBSP"},
		{name: "lowercase code", text: "sdco", want: "SDCO"},
		{name: "code with whitespace", text: "  SBGR  ", want: "SBGR"},
		{name: "code before dash", text: "SBSP - Congonhas", want: "SBSP"},
		{name: "code embedded in text", text: "Heliponto SDKM Morumbi", want: "SDKM"},
		{name: "known heliport name", text: "Congonhas", want: "SBSP"},
		{name: "name with extra text", text: "Helicentro Alphaville", want: "SDCO"},
		{name: "autodromo alias", text: "Autodromo de Interlagos", want: "SSXK"},
		{name: "unknown text passes through uppercased", text: "fazenda boa vista", want: "FAZENDA BOA VISTA"},
		{name: "empty", text: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractICAO(tt.text))
		})
	}
}

func TestCoordTable_DistanceNM(t *testing.T) {
	table := NewCoordTable(nil)

	t.Run("known pair", func(t *testing.T) {
		d := table.DistanceNM("SBSP", "SDCO")
		assert.InDelta(t, 12.7, d, 0.5)
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, table.DistanceNM("SBSP", "SBRJ"), table.DistanceNM("SBRJ", "SBSP"))
	})

	t.Run("zero for the same heliport", func(t *testing.T) {
		assert.Zero(t, table.DistanceNM("SBSP", "SBSP"))
	})

	t.Run("resolves names and free text", func(t *testing.T) {
		d := table.DistanceNM("Congonhas", "Helicentro Alphaville")
		assert.Greater(t, d, 0.0)
	})

	t.Run("unknown endpoint yields zero", func(t *testing.T) {
		assert.Zero(t, table.DistanceNM("SBSP", "XXXXX"))
		assert.Zero(t, table.DistanceNM("", "SBSP"))
	})
}

func TestNewCoordTable_ExtraOverrides(t *testing.T) {
	table := NewCoordTable(map[string]Coord{
		"SBSP": {Lat: 0, Lon: 0, Name: "Moved"},
	})

	// The override puts SBSP at the origin, far from SBGR.
	assert.Greater(t, table.DistanceNM("SBSP", "SBGR"), 1000.0)
}
