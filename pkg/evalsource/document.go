package evalsource

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dmitrymomot/featureconfig/pkg/feature"
)

// Document is the wire format shared by the HTTP and S3 sources.
//
//	{"featureEvaluations": [{"feature": "featureA", "variation": "CONTROL", "value": {"stringValue": "x"}}]}
type Document struct {
	FeatureEvaluations []feature.RawEvaluation `json:"featureEvaluations" yaml:"featureEvaluations"`
}

// decodeDocument reads a JSON document. A body without a featureEvaluations
// list is malformed; an empty list is a valid "no assignments" answer.
func decodeDocument(r io.Reader) ([]feature.RawEvaluation, error) {
	var doc struct {
		FeatureEvaluations *[]feature.RawEvaluation `json:"featureEvaluations"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}
	if doc.FeatureEvaluations == nil {
		return nil, errors.Join(ErrMalformedResponse, errors.New("missing featureEvaluations"))
	}
	return *doc.FeatureEvaluations, nil
}
