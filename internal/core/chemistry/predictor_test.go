package chemistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictProduct_Rules(t *testing.T) {
	tests := []struct {
		name  string
		input ReactionInput
		want  string
	}{
		{
			name:  "aldol with acetone",
			input: ReactionInput{Reactants: "Benzaldehyde + Acetone"},
			want:  "4-Phenyl-3-buten-2-one (Benzalacetone)",
		},
		{
			name:  "aldol with acetophenone",
			input: ReactionInput{Reactants: "benzaldehyde + acetophenone"},
			want:  "4-Phenyl-3-buten-2-one (Benzalacetone)",
		},
		{
			name:  "esterification",
			input: ReactionInput{Reactants: "Acetic Acid + Ethanol"},
			want:  "Ethyl acetate + Water",
		},
		{
			name:  "esterification with ethanoic acid",
			input: ReactionInput{Reactants: "Ethanoic acid + ethanol"},
			want:  "Ethyl acetate + Water",
		},
		{
			name:  "ester hydrolysis needs acid or base catalyst",
			input: ReactionInput{Reactants: "Ethyl acetate + Water", Catalyst: "Dilute Acid"},
			want:  "Acetic acid + Ethanol",
		},
		{
			name:  "saponification",
			input: ReactionInput{Reactants: "Methyl ester + NaOH"},
			want:  "Sodium salt of carboxylic acid + Alcohol",
		},
		{
			name:  "saponification with sodium hydroxide",
			input: ReactionInput{Reactants: "ester + sodium hydroxide"},
			want:  "Sodium salt of carboxylic acid + Alcohol",
		},
		{
			name:  "friedel-crafts alkylation",
			input: ReactionInput{Reactants: "Benzene + Methyl chloride", Catalyst: "AlCl3"},
			want:  "Alkylbenzene + HCl",
		},
		{
			// "acyl chloride" 一定包含 "chloride"，所以會先命中烷基化規則
			name:  "acyl chloride is matched by alkylation first",
			input: ReactionInput{Reactants: "Benzene + Acetyl acyl chloride", Catalyst: "aluminum chloride"},
			want:  "Alkylbenzene + HCl",
		},
		{
			name:  "grignard",
			input: ReactionInput{Reactants: "CH3MgBr2 + Aldehyde"},
			want:  "Secondary or tertiary alcohol",
		},
		{
			name:  "alcohol dehydration above 100",
			input: ReactionInput{Reactants: "Ethyl alcohol", Catalyst: "H2SO4", Temperature: "170"},
			want:  "Alkene + Water",
		},
		{
			name:  "hydrogenation",
			input: ReactionInput{Reactants: "Alkene + Hydrogen", Catalyst: "Pd/C"},
			want:  "Alkane",
		},
		{
			name:  "halogenation with uv",
			input: ReactionInput{Reactants: "Alkane + Bromine + UV"},
			want:  "Haloalkane + HX",
		},
		{
			name:  "halogenation above 300",
			input: ReactionInput{Reactants: "Alkane + Chlorine", Temperature: "350"},
			want:  "Haloalkane + HX",
		},
		{
			name:  "benzaldehyde water with acid",
			input: ReactionInput{Reactants: "Benzaldehyde + Water", Catalyst: "acid"},
			want:  "Benzoic acid + Hydrogen",
		},
		{
			name:  "benzaldehyde water hot",
			input: ReactionInput{Reactants: "Benzaldehyde + Water", Temperature: "120"},
			want:  "Benzoic acid + Hydrogen",
		},
		{
			name:  "benzaldehyde water standard conditions",
			input: ReactionInput{Reactants: "Benzaldehyde + Water", Temperature: "25"},
			want:  "No significant reaction under standard conditions",
		},
		{
			name:  "unknown",
			input: ReactionInput{Reactants: "Sodium + Chlorine"},
			want:  FallbackPrediction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PredictProduct(tt.input))
		})
	}
}

func TestPredictProduct_FirstMatchWins(t *testing.T) {
	// 同時符合 aldol 與 benzaldehyde+water，應回傳較前面的規則
	got := PredictProduct(ReactionInput{Reactants: "Benzaldehyde + Acetone + Water", Catalyst: "acid"})
	assert.Equal(t, "4-Phenyl-3-buten-2-one (Benzalacetone)", got)
}

func TestPredictProduct_TemperatureGuards(t *testing.T) {
	base := ReactionInput{Reactants: "alcohol", Catalyst: "sulfuric acid"}

	at100 := base
	at100.Temperature = "100"
	assert.Equal(t, FallbackPrediction, PredictProduct(at100))

	unparsable := base
	unparsable.Temperature = "hot"
	assert.Equal(t, FallbackPrediction, PredictProduct(unparsable), "unparsable temperature defaults to 25")

	leadingDigits := base
	leadingDigits.Temperature = "  150.7 C"
	assert.Equal(t, "Alkene + Water", PredictProduct(leadingDigits))

	alkane := ReactionInput{Reactants: "alkane + chlorine", Temperature: "300"}
	assert.Equal(t, FallbackPrediction, PredictProduct(alkane))
}

func TestPredictProduct_MissingCatalyst(t *testing.T) {
	got := PredictProduct(ReactionInput{Reactants: "Ethyl acetate + Water"})
	assert.Equal(t, FallbackPrediction, got)
}

func TestPredictor_RuleOrder(t *testing.T) {
	assert.Equal(t, []string{
		"aldol-condensation",
		"esterification",
		"ester-hydrolysis",
		"saponification",
		"friedel-crafts-alkylation",
		"friedel-crafts-acylation",
		"grignard-addition",
		"alcohol-dehydration",
		"alkene-hydrogenation",
		"alkane-halogenation",
		"benzaldehyde-oxidation",
		"benzaldehyde-water-inert",
	}, defaultPredictor.Rules())
}

func TestNewPredictor_Errors(t *testing.T) {
	_, err := NewPredictor([]byte("- name: broken\n  when: [[[\n"))
	assert.Error(t, err, "invalid yaml")

	_, err = NewPredictor([]byte("- name: syntax\n  when: 'reactants.contains('\n  then: x\n"))
	assert.Error(t, err, "CEL parse error")

	_, err = NewPredictor([]byte("- name: unknown-var\n  when: 'pressure > 1'\n  then: x\n"))
	assert.Error(t, err, "undeclared variable")

	_, err = NewPredictor([]byte("- name: not-bool\n  when: 'temperature + 1'\n  then: x\n"))
	assert.Error(t, err, "non-bool condition")

	_, err = NewPredictor([]byte("- name: no-product\n  when: 'true'\n"))
	assert.Error(t, err, "empty prediction")
}

func TestNewPredictor_Custom(t *testing.T) {
	p, err := NewPredictor([]byte(`
- name: cold
  when: temperature < 0
  then: Ice
- name: solvent
  when: solvent == "water"
  then: Solution
`))
	require.NoError(t, err)

	assert.Equal(t, "Ice", p.Predict(ReactionInput{Solvent: "Water", Temperature: "-5"}))
	assert.Equal(t, "Solution", p.Predict(ReactionInput{Solvent: "Water", Temperature: "10"}))
	assert.Equal(t, FallbackPrediction, p.Predict(ReactionInput{Solvent: "Ethanol"}))
}
