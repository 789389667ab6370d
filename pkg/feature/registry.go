package feature

// Known feature identifiers.
const (
	Test                     Name = "test"
	FeatureA                 Name = "featureA"
	FeatureB                 Name = "featureB"
	CustomizationArnOverride Name = "customizationArnOverride"
	ProjectContextGroup      Name = "projectContextGroup"
	DataCollection           Name = "dataCollection"
)

// Definition describes a registered feature.
type Definition struct {
	// ID is the identifier used by callers.
	ID Name
	// Name is the feature name used by the backend and shown in telemetry.
	Name string
	// Default is used by value lookups when the feature wasn't fetched.
	Default *Evaluation
}

// definitions is the registry. Order matters: telemetry output follows it.
var definitions = []Definition{
	{
		ID:      Test,
		Name:    "testFeature",
		Default: &Evaluation{Name: "testFeature", Variation: VariationControl, Value: StringValue("testValue")},
	},
	{ID: FeatureA, Name: "featureA"},
	{ID: FeatureB, Name: "featureB"},
	{ID: CustomizationArnOverride, Name: "customizationArnOverride"},
	{
		ID:      ProjectContextGroup,
		Name:    "ProjectContextV2",
		Default: &Evaluation{Name: "ProjectContextV2", Variation: VariationControl, Value: StringValue(groupControl)},
	},
	{ID: DataCollection, Name: "IDEProjectContextDataCollection"},
}

// Indexes are built during variable initialization so init functions can rely on them.
var byID, byRemote = indexDefinitions()

func indexDefinitions() (map[Name]int, map[string]int) {
	ids := make(map[Name]int, len(definitions))
	remote := make(map[string]int, len(definitions))
	for i, d := range definitions {
		ids[d.ID] = i
		remote[d.Name] = i
	}
	return ids, remote
}

// Definitions returns the registered features in registry order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	for i := range definitions {
		out[i] = definitionAt(i)
	}
	return out
}

// definitionAt copies the definition so callers can't alter registry defaults.
func definitionAt(i int) Definition {
	d := definitions[i]
	if d.Default != nil {
		def := d.Default.clone()
		d.Default = &def
	}
	return d
}

// Lookup returns the definition registered under the identifier id.
func Lookup(id string) (Definition, bool) {
	i, ok := byID[Name(id)]
	if !ok {
		return Definition{}, false
	}
	return definitionAt(i), true
}

// LookupRemote resolves a feature name sent by the backend.
// The identifier itself is accepted too, since some sources key records by it.
func LookupRemote(name string) (Definition, bool) {
	if i, ok := byRemote[name]; ok {
		return definitionAt(i), true
	}
	return Lookup(name)
}
