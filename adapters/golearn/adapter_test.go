package golearn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	p "github.com/wdm0006/purifier/pkg/purifier"
)

func TestRoundTrip(t *testing.T) {
	c := p.NewChain(
		p.Stage{Kind: p.KindSediment, Efficiency: 50},
		p.Stage{Kind: p.KindCarbon, Efficiency: 30},
		p.Stage{Kind: p.KindReverseOsmosis, Efficiency: 90},
	)
	steps, err := p.SimulateSteps(c, p.NewWaterState())
	require.NoError(t, err)

	inst, err := ToDenseInstances(steps)
	require.NoError(t, err)
	cols, rows := inst.Size()
	assert.Equal(t, 6, cols)
	assert.Equal(t, 4, rows)
	require.Len(t, inst.AllClassAttributes(), 1)
	assert.Equal(t, "stage", inst.AllClassAttributes()[0].GetName())

	back, err := FromDenseInstances(inst)
	require.NoError(t, err)
	assert.Equal(t, steps, back)
}
