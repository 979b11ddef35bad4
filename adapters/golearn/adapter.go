// Package golearn converts purification traces to and from
// github.com/sjwhitworth/golearn/base DenseInstances so they can be fed to
// golearn models and evaluation helpers.
package golearn

import (
	"fmt"

	"github.com/sjwhitworth/golearn/base"

	p "github.com/wdm0006/purifier/pkg/purifier"
)

// InitialStage is the class value of the untreated snapshot.
const InitialStage = "initial"

var numericColumns = []string{"step", "efficiency", "sediment", "chemicals", "microbes"}

func numericValues(s p.Step) []float64 {
	return []float64{float64(s.Index), float64(s.Efficiency), s.State.Sediment, s.State.Chemicals, s.State.Microbes}
}

// ToDenseInstances converts a trace into DenseInstances. The stage label is
// a categorical class attribute.
func ToDenseInstances(steps []p.Step) (*base.DenseInstances, error) {
	attrs := make([]base.Attribute, 0, len(numericColumns)+1)
	for _, name := range numericColumns {
		attrs = append(attrs, base.NewFloatAttribute(name))
	}
	stage := new(base.CategoricalAttribute)
	stage.SetName("stage")
	attrs = append(attrs, stage)

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.AddClassAttribute(stage); err != nil {
		return nil, err
	}
	if err := inst.Extend(len(steps)); err != nil {
		return nil, err
	}
	for r, s := range steps {
		for c, v := range numericValues(s) {
			inst.Set(specs[c], r, base.PackFloatToBytes(v))
		}
		label := s.Stage
		if label == "" {
			label = InitialStage
		}
		inst.Set(specs[len(specs)-1], r, stage.GetSysValFromString(label))
	}
	return inst, nil
}

// FromDenseInstances converts DenseInstances produced by ToDenseInstances
// back into a trace.
func FromDenseInstances(inst *base.DenseInstances) ([]p.Step, error) {
	byName := map[string]base.AttributeSpec{}
	for _, a := range inst.AllAttributes() {
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		byName[a.GetName()] = spec
	}
	for _, name := range append(append([]string{}, numericColumns...), "stage") {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("missing attribute %q", name)
		}
	}
	num := func(name string, row int) float64 {
		return base.UnpackBytesToFloat(inst.Get(byName[name], row))
	}
	_, rows := inst.Size()
	out := make([]p.Step, rows)
	for r := 0; r < rows; r++ {
		spec := byName["stage"]
		label := spec.GetAttribute().GetStringFromSysVal(inst.Get(spec, r))
		if label == InitialStage {
			label = ""
		}
		out[r] = p.Step{
			Index:      int(num("step", r)),
			Stage:      label,
			Efficiency: int(num("efficiency", r)),
			State: p.WaterState{
				Sediment:  num("sediment", r),
				Chemicals: num("chemicals", r),
				Microbes:  num("microbes", r),
			},
		}
	}
	return out, nil
}
