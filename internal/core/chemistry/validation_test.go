package chemistry

import (
	"strings"
	"testing"

	"green-chemistry-helper/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ReactionInput {
	return ReactionInput{
		Reactants:   "Benzaldehyde + Acetone",
		Solvent:     "Ethanol",
		Temperature: "25",
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(validInput()))

	in := validInput()
	in.Products = "Benzalacetone"
	in.Catalyst = "NaOH"
	in.Temperature = " 1e2 "
	assert.NoError(t, Validate(in))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ReactionInput)
		want   string
	}{
		{"missing reactants", func(in *ReactionInput) { in.Reactants = "   " }, "Please enter at least one reactant"},
		{"numbers only", func(in *ReactionInput) { in.Reactants = "12 + 34" }, "Please enter chemical names, not just numbers or symbols"},
		{"markup", func(in *ReactionInput) { in.Reactants = "<script>" }, "Input contains invalid characters"},
		{"too long", func(in *ReactionInput) { in.Reactants = strings.Repeat("a", MaxChemicalInputLength+1) }, "Input is too long (maximum 500 characters)"},
		{"bad products", func(in *ReactionInput) { in.Products = "{}" }, "Products field: Input contains invalid characters"},
		{"missing solvent", func(in *ReactionInput) { in.Solvent = "" }, "Please select a solvent"},
		{"unknown solvent", func(in *ReactionInput) { in.Solvent = "Carbon Tetrachloride" }, "Unsupported solvent: Carbon Tetrachloride"},
		{"missing temperature", func(in *ReactionInput) { in.Temperature = "" }, "Please enter a valid temperature"},
		{"text temperature", func(in *ReactionInput) { in.Temperature = "hot" }, "Please enter a valid temperature"},
		{"partial number", func(in *ReactionInput) { in.Temperature = "12abc" }, "Please enter a valid temperature"},
		{"nan", func(in *ReactionInput) { in.Temperature = "NaN" }, "Please enter a valid temperature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)

			err := Validate(in)
			require.Error(t, err)
			assert.True(t, common.IsValidationError(err))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestValidate_FirstErrorOnly(t *testing.T) {
	err := Validate(ReactionInput{})
	require.Error(t, err)
	assert.Equal(t, "Please enter at least one reactant", err.Error())
}

func TestIsNumeric(t *testing.T) {
	for _, ok := range []string{"0", "-12.5", ".5", "5.", "0x10", "0b101", "0o17", "Infinity", "-Infinity", "1e400", " 42 ", "\ufeff150", "\u00a0 7\u2029"} {
		assert.True(t, isNumeric(ok), ok)
	}
	for _, bad := range []string{"", " ", "inf", "1_000", "12 13", "abc", "-0x10", "0x1p-2", "0x", "0b102", "NaN", "\u0085150", "150\u0085"} {
		assert.False(t, isNumeric(bad), bad)
	}
}
