package chemistry

// ReactionInput 使用者輸入的反應參數
type ReactionInput struct {
	Reactants   string `json:"reactants" yaml:"reactants"`
	Products    string `json:"products" yaml:"products"`
	Solvent     string `json:"solvent" yaml:"solvent"`
	Catalyst    string `json:"catalyst" yaml:"catalyst"`
	Temperature string `json:"temperature" yaml:"temperature"`
}

// EcoRating 環保評級
type EcoRating string

const (
	EcoRatingGood     EcoRating = "Good"
	EcoRatingModerate EcoRating = "Moderate"
	EcoRatingBad      EcoRating = "Bad"
)

// Issue 環境問題
type Issue struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Suggestion 綠色替代建議
type Suggestion struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// EnergyTip 節能建議
type EnergyTip struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// AnalysisResult 分析結果，列表順序即規則觸發順序
type AnalysisResult struct {
	EcoRating   EcoRating    `json:"ecoRating" yaml:"ecoRating"`
	Issues      []Issue      `json:"issues" yaml:"issues"`
	Suggestions []Suggestion `json:"suggestions" yaml:"suggestions"`
	EnergyTips  []EnergyTip  `json:"energyTips" yaml:"energyTips"`
}
