package chemistry

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"gopkg.in/yaml.v3"
)

// FallbackPrediction 沒有任何規則成立時的預測結果
const FallbackPrediction = "Product prediction requires more specific reaction details"

//go:embed rules/predictor.yaml
var defaultPredictorRules []byte

// defaultPredictor 內建規則編譯後的預測器，初始化後不再變動
var defaultPredictor = mustNewPredictor(defaultPredictorRules)

// PredictionRule 單條預測規則，When 為 CEL 表達式
type PredictionRule struct {
	Name string `yaml:"name"`
	When string `yaml:"when"`
	Then string `yaml:"then"`

	program cel.Program
}

// Predictor 依序比對規則的產物預測器
type Predictor struct {
	rules []PredictionRule
}

// NewPredictionEnv 建立預測規則使用的 CEL 環境
func NewPredictionEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("reactants", cel.StringType),
		cel.Variable("catalyst", cel.StringType),
		cel.Variable("solvent", cel.StringType),
		cel.Variable("temperature", cel.IntType),
	)
}

// NewPredictor 從 YAML 規則內容建立預測器
func NewPredictor(content []byte) (*Predictor, error) {
	var rules []PredictionRule
	if err := yaml.Unmarshal(content, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse prediction rules: %w", err)
	}

	env, err := NewPredictionEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	for i := range rules {
		if err := rules[i].compile(env); err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i+1, rules[i].Name, err)
		}
	}

	return &Predictor{rules: rules}, nil
}

func mustNewPredictor(content []byte) *Predictor {
	p, err := NewPredictor(content)
	if err != nil {
		panic(err)
	}
	return p
}

// compile 將 When 編譯為 CEL 程式
func (r *PredictionRule) compile(env *cel.Env) error {
	if strings.TrimSpace(r.Then) == "" {
		return fmt.Errorf("empty prediction")
	}

	ast, iss := env.Parse(r.When)
	if iss.Err() != nil {
		return iss.Err()
	}
	checked, iss := env.Check(ast)
	if iss.Err() != nil {
		return iss.Err()
	}
	if !checked.OutputType().IsExactType(cel.BoolType) {
		return fmt.Errorf("condition must be bool, got %s", checked.OutputType())
	}

	var err error
	r.program, err = env.Program(checked)
	return err
}

// matches 執行錯誤視為不成立
func (r *PredictionRule) matches(vars map[string]any) bool {
	out, _, err := r.program.Eval(vars)
	if err != nil {
		return false
	}
	matched, ok := out.Value().(bool)
	return ok && matched
}

// Rules 回傳規則名稱（依比對順序）
func (p *Predictor) Rules() []string {
	names := make([]string, len(p.rules))
	for i, r := range p.rules {
		names[i] = r.Name
	}
	return names
}

// Predict 回傳第一條成立規則的產物，皆不成立時回傳 FallbackPrediction
func (p *Predictor) Predict(input ReactionInput) string {
	vars := map[string]any{
		"reactants":   strings.ToLower(input.Reactants),
		"catalyst":    strings.ToLower(input.Catalyst),
		"solvent":     strings.ToLower(input.Solvent),
		"temperature": int64(predictionTemperature(input.Temperature)),
	}

	for i := range p.rules {
		if p.rules[i].matches(vars) {
			return p.rules[i].Then
		}
	}
	return FallbackPrediction
}

// PredictProduct 使用內建規則預測產物
func PredictProduct(input ReactionInput) string {
	return defaultPredictor.Predict(input)
}
