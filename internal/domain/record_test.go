package domain

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnSet(t *testing.T) {
	s := NewColumnSet(ColDate, ColRevenue)

	assert.True(t, s.Has(ColDate))
	assert.False(t, s.Has(ColPax))

	s.Add(ColPax, ColFlightHours)
	assert.True(t, s.Has(ColPax))

	clone := s.Clone()
	clone.Add(ColLandings)
	assert.False(t, s.Has(ColLandings))

	union := s.Union(NewColumnSet(ColCost))
	assert.True(t, union.Has(ColCost))
	assert.True(t, union.Has(ColDate))
	assert.False(t, s.Has(ColCost))
}

func TestColumnSet_GobRoundTrip(t *testing.T) {
	type payload struct {
		Columns ColumnSet
	}

	in := payload{Columns: NewColumnSet(ColDate, ColRevenue, ColPax)}

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(in))

	var out payload
	require.NoError(t, gob.NewDecoder(&buf).Decode(&out))

	assert.Equal(t, in.Columns, out.Columns)
}

func TestColumnSet_GobRoundTrip_Empty(t *testing.T) {
	type payload struct {
		Columns ColumnSet
	}

	in := payload{Columns: ColumnSet{}}

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(in))

	var out payload
	require.NoError(t, gob.NewDecoder(&buf).Decode(&out))

	assert.Empty(t, out.Columns)
}

func TestFlightRecord_Route(t *testing.T) {
	r := FlightRecord{Departure: "SBSP", Arrival: "SDCO"}
	assert.Equal(t, "SBSP - SDCO", r.Route())
}

func TestDataset_Clone(t *testing.T) {
	ds := NewDataset(ColDate, ColRevenue)
	ds.Records = append(ds.Records, FlightRecord{ID: "1", Revenue: 100})

	clone := ds.Clone()
	clone.Records[0].Revenue = 999
	clone.Columns.Add(ColCost)

	assert.Equal(t, 100.0, ds.Records[0].Revenue)
	assert.False(t, ds.Has(ColCost))
}

func TestDataset_Clone_Nil(t *testing.T) {
	var ds *Dataset
	assert.Nil(t, ds.Clone())
	assert.Zero(t, ds.Len())
	assert.False(t, ds.Has(ColDate))
}

func TestDataset_Select(t *testing.T) {
	ds := NewDataset(ColRevenue)
	ds.Records = []FlightRecord{
		{ID: "1", Revenue: 100},
		{ID: "2", Revenue: 0},
		{ID: "3", Revenue: 250},
	}

	out := ds.Select(func(r *FlightRecord) bool { return r.Revenue > 0 })

	require.Equal(t, 2, out.Len())
	assert.Equal(t, "1", out.Records[0].ID)
	assert.Equal(t, "3", out.Records[1].ID)
	assert.Equal(t, 3, ds.Len())
}
