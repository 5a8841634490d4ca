package model

// DefaultDimensionWeight applies when a dimension does not declare a weight.
const DefaultDimensionWeight = 20

// Dimension is one weighted axis of a subcomponent's scoring rubric.
type Dimension struct {
	Name        string  `json:"name" yaml:"name"`
	Weight      float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// EffectiveWeight returns the declared weight or the default when unset.
func (d Dimension) EffectiveWeight() float64 {
	if d.Weight <= 0 {
		return DefaultDimensionWeight
	}
	return d.Weight
}

// UseCase is a hand-authored company anecdote attached to a subcomponent.
type UseCase struct {
	Company    string `json:"company" yaml:"company"`
	Challenge  string `json:"challenge,omitempty" yaml:"challenge,omitempty"`
	Approach   string `json:"approach,omitempty" yaml:"approach,omitempty"`
	Definition string `json:"definition,omitempty" yaml:"definition,omitempty"`
	Results    string `json:"results,omitempty" yaml:"results,omitempty"`
	KeyInsight string `json:"key_insight,omitempty" yaml:"key_insight,omitempty"`
}

// Subcomponent is a leaf of the block × subcomponent taxonomy, e.g. "3-1".
type Subcomponent struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Block      int         `json:"block" yaml:"block"`
	Dimensions []Dimension `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	UseCases   []UseCase   `json:"use_cases,omitempty" yaml:"use_cases,omitempty"`
}
