package feature_test

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/featureconfig/pkg/feature"
)

func TestGetFeatureConfigsTelemetry(t *testing.T) {
	t.Parallel()

	const expected = "{testFeature: TREATMENT, featureA: CONTROL, featureB: TREATMENT, customizationArnOverride: customizationName}"

	t.Run("renders registry order", func(t *testing.T) {
		t.Parallel()
		provider := newFetchedProvider(t, mockEvaluations()...)
		assert.Equal(t, expected, provider.GetFeatureConfigsTelemetry())
	})

	t.Run("ignores response order", func(t *testing.T) {
		t.Parallel()
		reversed := mockEvaluations()
		slices.Reverse(reversed)
		provider := newFetchedProvider(t, reversed...)
		assert.Equal(t, expected, provider.GetFeatureConfigsTelemetry())
	})

	t.Run("empty cache", func(t *testing.T) {
		t.Parallel()
		provider := feature.NewProvider(feature.NewStaticFetcher())
		assert.Equal(t, "{}", provider.GetFeatureConfigsTelemetry())
		require.NoError(t, provider.FetchFeatureConfigs(context.Background()))
		assert.Equal(t, "{}", provider.GetFeatureConfigsTelemetry())
	})

	t.Run("uses remote names", func(t *testing.T) {
		t.Parallel()
		provider := newFetchedProvider(t,
			feature.RawEvaluation{Feature: "IDEProjectContextDataCollection", Variation: "TREATMENT"},
			feature.RawEvaluation{Feature: "ProjectContextV2", Variation: "TREATMENT_1"},
		)
		assert.Equal(t, "{ProjectContextV2: TREATMENT_1, IDEProjectContextDataCollection: TREATMENT}", provider.GetFeatureConfigsTelemetry())
	})
}
