package chemistry

// Alternative 有害物質與其綠色替代品
type Alternative struct {
	Name         string   `json:"name"`
	Alternatives []string `json:"alternatives"`
}

// Solvents 表單可選的溶劑
var Solvents = []string{
	"Water",
	"Ethanol",
	"Methanol",
	"Acetone",
	"Ethyl Acetate",
	"Dichloromethane",
	"Chloroform",
	"Benzene",
	"Toluene",
	"Hexane",
	"THF",
	"DMF",
	"DMSO",
}

// problematicSolvents 有害溶劑（名稱需完全相符）
var problematicSolvents = map[string][]string{
	"Benzene":              {"Water", "Ethanol", "2-Propanol", "Ethyl Acetate"},
	"Chloroform":           {"Ethyl Acetate", "2-MeTHF", "Ethanol"},
	"Dichloromethane":      {"Ethyl Acetate", "Acetone", "2-MeTHF"},
	"Carbon Tetrachloride": {"Ethyl Acetate", "Heptane"},
	"Hexane":               {"Heptane", "2-MeTHF"},
	"DMF":                  {"Ethyl Lactate", "Propylene Carbonate"},
	"DMSO":                 {"Ethyl Lactate", "Propylene Carbonate"},
	"Toluene":              {"Anisole", "2-MeTHF", "Ethyl Acetate"},
}

// problematicCatalysts 有害催化劑關鍵字，依宣告順序比對，先中先贏
var problematicCatalysts = []Alternative{
	{Name: "Chromium", Alternatives: []string{"Hydrogen Peroxide", "Enzymes"}},
	{Name: "Lead", Alternatives: []string{"Zinc", "Iron"}},
	{Name: "Mercury", Alternatives: []string{"Zinc", "Iron"}},
	{Name: "Cadmium", Alternatives: []string{"Zinc", "Iron"}},
	{Name: "Nickel", Alternatives: []string{"Iron", "Copper"}},
	{Name: "AlCl3", Alternatives: []string{"Zeolites", "Solid Acid Catalysts"}},
	{Name: "ZnCl2", Alternatives: []string{"Zeolites", "Solid Acid Catalysts"}},
}

// SolventAlternatives 查詢有害溶劑的替代品，回傳副本
func SolventAlternatives(solvent string) ([]string, bool) {
	alts, ok := problematicSolvents[solvent]
	if !ok {
		return nil, false
	}
	return append([]string(nil), alts...), true
}

// HazardousSolvents 列出所有有害溶劑
func HazardousSolvents() map[string][]string {
	out := make(map[string][]string, len(problematicSolvents))
	for name, alts := range problematicSolvents {
		out[name] = append([]string(nil), alts...)
	}
	return out
}

// HazardousCatalysts 依宣告順序列出有害催化劑關鍵字
func HazardousCatalysts() []Alternative {
	out := make([]Alternative, len(problematicCatalysts))
	for i, c := range problematicCatalysts {
		out[i] = Alternative{Name: c.Name, Alternatives: append([]string(nil), c.Alternatives...)}
	}
	return out
}

// IsKnownSolvent 檢查溶劑是否在可選清單中
func IsKnownSolvent(solvent string) bool {
	for _, s := range Solvents {
		if s == solvent {
			return true
		}
	}
	return false
}
