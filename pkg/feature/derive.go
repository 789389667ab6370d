package feature

// Project context rollout group codes.
const (
	groupControl    = "control"
	groupTreatment1 = "t1"
	groupTreatment2 = "t2"
)

var groupCodes = map[string]string{
	VariationControl:    groupControl,
	VariationTreatment1: groupTreatment1,
	VariationTreatment2: groupTreatment2,
}

// GroupCode maps a rollout variation to its short group code.
// Variations without a mapping fall back to the control group.
func GroupCode(variation string) string {
	if code, ok := groupCodes[variation]; ok {
		return code
	}
	return groupControl
}

// Override is a customization override pushed by the backend.
type Override struct {
	// ARN of the customization to use instead of the user's selection.
	ARN string `json:"arn"`
	// Name is the human-readable name of the customization.
	Name string `json:"name"`
}

// overrideFrom extracts an override from an evaluation.
// The string payload carries the ARN and the variation carries the name.
func overrideFrom(e Evaluation) (Override, bool) {
	arn, ok := e.Value.AsString()
	if !ok || arn == "" {
		return Override{}, false
	}
	return Override{ARN: arn, Name: e.Variation}, true
}
