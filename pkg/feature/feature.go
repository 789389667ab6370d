package feature

import "context"

// Name identifies a feature known to the registry.
type Name string

// Variation names assigned by the experimentation backend.
const (
	VariationControl    = "CONTROL"
	VariationTreatment  = "TREATMENT"
	VariationTreatment1 = "TREATMENT_1"
	VariationTreatment2 = "TREATMENT_2"
)

// Value is the payload attached to an evaluation.
// At most one field is expected to be set by the backend.
type Value struct {
	StringValue *string  `json:"stringValue,omitempty" yaml:"stringValue,omitempty"`
	BoolValue   *bool    `json:"boolValue,omitempty" yaml:"boolValue,omitempty"`
	LongValue   *int64   `json:"longValue,omitempty" yaml:"longValue,omitempty"`
	DoubleValue *float64 `json:"doubleValue,omitempty" yaml:"doubleValue,omitempty"`
}

// AsString returns the string payload if present.
func (v Value) AsString() (string, bool) {
	if v.StringValue == nil {
		return "", false
	}
	return *v.StringValue, true
}

// AsBool returns the boolean payload if present.
func (v Value) AsBool() (bool, bool) {
	if v.BoolValue == nil {
		return false, false
	}
	return *v.BoolValue, true
}

// AsLong returns the integer payload if present.
func (v Value) AsLong() (int64, bool) {
	if v.LongValue == nil {
		return 0, false
	}
	return *v.LongValue, true
}

// AsDouble returns the floating point payload if present.
func (v Value) AsDouble() (float64, bool) {
	if v.DoubleValue == nil {
		return 0, false
	}
	return *v.DoubleValue, true
}

// clone returns a deep copy so cached values can't be changed through a caller's copy.
func (v Value) clone() Value {
	var c Value
	if v.StringValue != nil {
		s := *v.StringValue
		c.StringValue = &s
	}
	if v.BoolValue != nil {
		b := *v.BoolValue
		c.BoolValue = &b
	}
	if v.LongValue != nil {
		l := *v.LongValue
		c.LongValue = &l
	}
	if v.DoubleValue != nil {
		d := *v.DoubleValue
		c.DoubleValue = &d
	}
	return c
}

// StringValue is a helper for building a Value that carries a string.
func StringValue(s string) Value {
	return Value{StringValue: &s}
}

// Evaluation is the backend decision for a single feature in this process.
type Evaluation struct {
	Name      string `json:"name"`
	Variation string `json:"variation"`
	Value     Value  `json:"value"`
}

func (e Evaluation) clone() Evaluation {
	e.Value = e.Value.clone()
	return e
}

// RawEvaluation is a record exactly as returned by a Fetcher.
type RawEvaluation struct {
	Feature   string `json:"feature" yaml:"feature"`
	Variation string `json:"variation" yaml:"variation"`
	Value     Value  `json:"value" yaml:"value"`
}

// Fetcher retrieves feature evaluations from the experimentation backend.
type Fetcher interface {
	// FetchEvaluations returns every evaluation the backend assigned to this client.
	// Unknown features in the response are allowed and ignored by the Provider.
	FetchEvaluations(ctx context.Context) ([]RawEvaluation, error)
}

// FetcherFunc adapts an ordinary function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]RawEvaluation, error)

// FetchEvaluations calls f(ctx).
func (f FetcherFunc) FetchEvaluations(ctx context.Context) ([]RawEvaluation, error) {
	return f(ctx)
}
