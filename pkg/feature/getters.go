package feature

import (
	"errors"
	"fmt"
	"reflect"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// getter computes the typed value exposed for a feature.
type getter func(p *Provider) any

// getters holds one entry per registered feature. init panics when it drifts from the registry.
var getters = map[Name]getter{
	Test:                     func(p *Provider) any { return p.GetTest() },
	FeatureA:                 func(p *Provider) any { return p.GetFeatureA() },
	FeatureB:                 func(p *Provider) any { return p.GetFeatureB() },
	CustomizationArnOverride: func(p *Provider) any { o, _ := p.GetCustomizationArnOverride(); return o },
	ProjectContextGroup:      func(p *Provider) any { return p.GetProjectContextGroup() },
	DataCollection:           func(p *Provider) any { return p.GetDataCollection() },
}

func init() {
	if err := validateGetters(getters); err != nil {
		panic(err)
	}
}

// GetterName returns the Provider method name serving feature id, e.g. "GetFeatureA".
func GetterName(id Name) string {
	// Casers are stateful, so each call gets its own.
	return "Get" + cases.Title(language.Und, cases.NoLower).String(string(id))
}

// validateGetters checks that every registered feature has an entry in table
// and a Provider method named after it, and that table has no extras.
func validateGetters(table map[Name]getter) error {
	pt := reflect.TypeOf((*Provider)(nil))
	var errs []error
	for _, d := range definitions {
		if _, ok := table[d.ID]; !ok {
			errs = append(errs, fmt.Errorf("feature %q has no getter entry", d.ID))
		}
		if _, ok := pt.MethodByName(GetterName(d.ID)); !ok {
			errs = append(errs, fmt.Errorf("feature %q has no %s method", d.ID, GetterName(d.ID)))
		}
	}
	for id := range table {
		if _, ok := byID[id]; !ok {
			errs = append(errs, fmt.Errorf("getter for unregistered feature %q", id))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrIncompleteGetters}, errs...)...)
	}
	return nil
}

// Derived returns the typed value of the getter registered for id.
// Unknown identifiers report false.
func (p *Provider) Derived(id string) (any, bool) {
	g, ok := getters[Name(id)]
	if !ok {
		return nil, false
	}
	return g(p), true
}

// GetTest returns the string payload of the test feature, or its default.
func (p *Provider) GetTest() string {
	v, _ := p.Value(string(Test))
	s, _ := v.AsString()
	return s
}

// GetFeatureA reports whether featureA is enabled.
func (p *Provider) GetFeatureA() bool {
	return p.IsEnabled(string(FeatureA))
}

// GetFeatureB reports whether featureB is enabled.
func (p *Provider) GetFeatureB() bool {
	return p.IsEnabled(string(FeatureB))
}

// GetCustomizationArnOverride returns the customization the backend wants used instead of the user's choice.
// It reports false when no override was fetched.
func (p *Provider) GetCustomizationArnOverride() (Override, bool) {
	e, ok := p.GetFeature(string(CustomizationArnOverride))
	if !ok {
		return Override{}, false
	}
	return overrideFrom(e)
}

// GetProjectContextGroup returns the rollout group code: "control", "t1" or "t2".
func (p *Provider) GetProjectContextGroup() string {
	return GroupCode(p.variation(ProjectContextGroup))
}

// GetDataCollection reports whether project context data collection is enabled.
func (p *Provider) GetDataCollection() bool {
	return p.IsEnabled(string(DataCollection))
}
