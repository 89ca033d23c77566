package store

import (
	"testing"

	"github.com/glidepath/glidepath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScenario() *domain.ScenarioInput {
	return &domain.ScenarioInput{
		Name:           "baseline",
		Age1:           65,
		RetirementAge:  65,
		HorizonYears:   30,
		PortfolioValue: decimal.NewFromInt(1000000),
		AnnualSpending: decimal.NewFromInt(45000),
		Allocation: domain.Allocation{
			Stock: decimal.NewFromInt(60),
			Bond:  decimal.NewFromInt(35),
			Cash:  decimal.NewFromInt(5),
		},
		InflationRate:   decimal.NewFromFloat(0.03),
		SpendingProfile: domain.ProfileFlat,
		Guardrails:      domain.DefaultGuardrails(),
		Iterations:      10000,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := NewScenarioStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("baseline", sampleScenario()))

	loaded, err := store.Load("baseline")
	require.NoError(t, err)

	assert.Equal(t, "baseline", loaded.Name)
	assert.Equal(t, 65, loaded.Age1)
	assert.True(t, loaded.PortfolioValue.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, loaded.Guardrails.Target.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, domain.ProfileFlat, loaded.SpendingProfile)
}

func TestSave_Overwrites(t *testing.T) {
	store, err := NewScenarioStore(t.TempDir())
	require.NoError(t, err)

	first := sampleScenario()
	require.NoError(t, store.Save("plan", first))

	second := sampleScenario()
	second.AnnualSpending = decimal.NewFromInt(50000)
	require.NoError(t, store.Save("plan", second))

	loaded, err := store.Load("plan")
	require.NoError(t, err)
	assert.True(t, loaded.AnnualSpending.Equal(decimal.NewFromInt(50000)))
}

func TestList_SortedNames(t *testing.T) {
	store, err := NewScenarioStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, store.Save(name, sampleScenario()))
	}

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestList_EmptyStore(t *testing.T) {
	store, err := NewScenarioStore(t.TempDir())
	require.NoError(t, err)

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDelete(t *testing.T) {
	store, err := NewScenarioStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("gone", sampleScenario()))
	require.NoError(t, store.Delete("gone"))

	_, err = store.Load("gone")
	assert.Error(t, err)

	assert.Error(t, store.Delete("gone"), "deleting twice fails")
}

func TestLoad_Missing(t *testing.T) {
	store, err := NewScenarioStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("never-saved")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "never-saved")
}

func TestValidateName(t *testing.T) {
	store, err := NewScenarioStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "a/b", "a\\b", ".", ".."} {
		assert.Error(t, store.Save(name, sampleScenario()), "name %q must be rejected", name)
	}
}
