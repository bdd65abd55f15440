package chemistry

import (
	"fmt"
	"strings"
)

// 溫度門檻
const (
	TempHigh     = 100
	TempModerate = 50
)

// temperature 解析後的溫度，無法解析時任何門檻比較皆不成立
type temperature struct {
	value int
	valid bool
}

func (t temperature) above(threshold int) bool {
	return t.valid && t.value > threshold
}

// AnalyzeReaction 依參考表與溫度門檻評估反應
func AnalyzeReaction(input ReactionInput) AnalysisResult {
	issues := []Issue{}
	suggestions := []Suggestion{}
	energyTips := []EnergyTip{}

	// 溶劑
	solvent := input.Solvent
	if alternatives, ok := problematicSolvents[solvent]; ok {
		issues = append(issues, Issue{
			Title:       fmt.Sprintf("Problematic Solvent: %s", solvent),
			Description: fmt.Sprintf("%s is considered hazardous according to green chemistry principles.", solvent),
		})
		suggestions = append(suggestions, Suggestion{
			Title:       "Consider Greener Solvents",
			Description: fmt.Sprintf("Replace %s with %s for a more environmentally friendly process.", solvent, strings.Join(alternatives, ", ")),
		})
	}

	// 催化劑：只回報第一個符合的關鍵字
	if input.Catalyst != "" {
		catalyst := strings.ToLower(input.Catalyst)
		for _, c := range problematicCatalysts {
			if !strings.Contains(catalyst, strings.ToLower(c.Name)) {
				continue
			}
			issues = append(issues, Issue{
				Title:       fmt.Sprintf("Problematic Catalyst: Contains %s", c.Name),
				Description: fmt.Sprintf("Catalysts containing %s are toxic and environmentally harmful.", c.Name),
			})
			suggestions = append(suggestions, Suggestion{
				Title:       "Consider Greener Catalysts",
				Description: fmt.Sprintf("Replace %s-based catalysts with %s for a more environmentally friendly process.", c.Name, strings.Join(c.Alternatives, ", ")),
			})
			break
		}
	}

	// 溫度
	var temp temperature
	temp.value, temp.valid = ParseTemperature(input.Temperature)
	if temp.above(TempHigh) {
		issues = append(issues, Issue{
			Title:       "High Temperature Process",
			Description: fmt.Sprintf("Reactions at %d°C require significant energy input, increasing environmental impact.", temp.value),
		})
		energyTips = append(energyTips,
			EnergyTip{
				Title:       "Consider Microwave Heating",
				Description: "Microwave heating can be more energy-efficient than conventional heating for high-temperature reactions.",
			},
			EnergyTip{
				Title:       "Explore Catalytic Alternatives",
				Description: "Adding appropriate catalysts may allow the reaction to proceed at lower temperatures.",
			},
		)
	} else if temp.above(TempModerate) {
		energyTips = append(energyTips, EnergyTip{
			Title:       "Optimize Heating Efficiency",
			Description: "Use insulated reaction vessels to minimize heat loss and energy consumption.",
		})
	}

	// 有害反應物
	reactants := strings.ToLower(input.Reactants)
	if strings.Contains(reactants, "formaldehyde") || strings.Contains(reactants, "formalin") {
		issues = append(issues, Issue{
			Title:       "Hazardous Reactant: Formaldehyde",
			Description: "Formaldehyde is carcinogenic and environmentally harmful.",
		})
		suggestions = append(suggestions, Suggestion{
			Title:       "Consider Safer Alternatives",
			Description: "Consider using glyoxal or other less toxic aldehydes as alternatives.",
		})
	}

	// 一般節能建議
	if len(energyTips) == 0 {
		energyTips = append(energyTips, EnergyTip{
			Title:       "Optimize Reaction Time",
			Description: "Shorter reaction times generally consume less energy. Monitor your reaction to avoid unnecessary extended heating.",
		})
	}
	energyTips = append(energyTips, EnergyTip{
		Title:       "Consider Ambient Conditions",
		Description: "When possible, design reactions that can proceed at room temperature and atmospheric pressure.",
	})

	rating := rateReaction(len(issues), temp)

	if len(suggestions) == 0 {
		suggestions = append(suggestions, Suggestion{
			Title:       "Explore Biocatalysis",
			Description: "Enzymes and biological catalysts often operate under mild conditions and can be highly selective.",
		})
	}

	return AnalysisResult{
		EcoRating:   rating,
		Issues:      issues,
		Suggestions: suggestions,
		EnergyTips:  energyTips,
	}
}

// rateReaction 依問題數量與溫度決定評級，Bad 優先判斷
func rateReaction(issueCount int, temp temperature) EcoRating {
	switch {
	case issueCount > 2 || (issueCount > 0 && temp.above(TempHigh)):
		return EcoRatingBad
	case issueCount > 0 || temp.above(TempModerate):
		return EcoRatingModerate
	default:
		return EcoRatingGood
	}
}

// RateReaction 供外部使用的評級函式，溫度字串以 ParseTemperature 解析
func RateReaction(issueCount int, rawTemperature string) EcoRating {
	var temp temperature
	temp.value, temp.valid = ParseTemperature(rawTemperature)
	return rateReaction(issueCount, temp)
}
