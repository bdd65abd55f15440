package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"green-chemistry-helper/internal/core/chemistry"
	"green-chemistry-helper/internal/core/report"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// 輸出格式
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ValidFormat 檢查輸出格式
func ValidFormat(format string) error {
	switch format {
	case FormatHuman, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (human, json, yaml)", format)
	}
}

// DisplayReport 輸出分析報告
func DisplayReport(w io.Writer, r *report.Report, format string) error {
	switch format {
	case FormatJSON:
		return displayJSON(w, r)
	case FormatYAML:
		return displayYAML(w, r)
	default:
		displayReportHuman(w, r)
		return nil
	}
}

// DisplayPrediction 輸出產物預測
func DisplayPrediction(w io.Writer, product string, format string) error {
	payload := struct {
		PredictedProduct string `json:"predicted_product" yaml:"predicted_product"`
	}{product}

	switch format {
	case FormatJSON:
		return displayJSON(w, payload)
	case FormatYAML:
		return displayYAML(w, payload)
	default:
		color.New(color.FgCyan, color.Bold).Fprintln(w, "🧪 PREDICTED PRODUCT:")
		fmt.Fprintf(w, "   %s\n", product)
		return nil
	}
}

// solventRow 溶劑列表輸出
type solventRow struct {
	Name         string   `json:"name" yaml:"name"`
	Hazardous    bool     `json:"hazardous" yaml:"hazardous"`
	Alternatives []string `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
}

// DisplaySolvents 輸出可選溶劑與有害溶劑的替代品
func DisplaySolvents(w io.Writer, format string) error {
	rows := make([]solventRow, 0, len(chemistry.Solvents))
	for _, name := range chemistry.Solvents {
		alternatives, hazardous := chemistry.SolventAlternatives(name)
		rows = append(rows, solventRow{Name: name, Hazardous: hazardous, Alternatives: alternatives})
	}

	switch format {
	case FormatJSON:
		return displayJSON(w, rows)
	case FormatYAML:
		return displayYAML(w, rows)
	}

	color.New(color.FgCyan, color.Bold).Fprintln(w, "🧴 SOLVENTS:")
	for _, row := range rows {
		if !row.Hazardous {
			fmt.Fprintf(w, "   %s %s\n", color.GreenString("✓"), row.Name)
			continue
		}
		fmt.Fprintf(w, "   %s %s %s\n", color.RedString("✗"), row.Name,
			color.HiBlackString("→ %s", strings.Join(row.Alternatives, ", ")))
	}
	return nil
}

// DisplayCatalysts 輸出會被標記的有害催化劑關鍵字
func DisplayCatalysts(w io.Writer, format string) error {
	catalysts := chemistry.HazardousCatalysts()

	switch format {
	case FormatJSON:
		return displayJSON(w, catalysts)
	case FormatYAML:
		return displayYAML(w, catalysts)
	}

	color.New(color.FgCyan, color.Bold).Fprintln(w, "⚗️  HAZARDOUS CATALYSTS:")
	for _, c := range catalysts {
		fmt.Fprintf(w, "   %s %s %s\n", color.RedString("✗"), c.Name,
			color.HiBlackString("→ %s", strings.Join(c.Alternatives, ", ")))
	}
	return nil
}

func displayJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func displayYAML(w io.Writer, v any) error {
	output, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(output))
	return err
}

func displayReportHuman(w io.Writer, r *report.Report) {
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)

	ratingColor(r.Result.EcoRating).Fprintf(w, "🌱 ECO-RATING: %s\n\n", strings.ToUpper(string(r.Result.EcoRating)))

	fmt.Fprintf(w, "   Reactants:   %s\n", r.Input.Reactants)
	fmt.Fprintf(w, "   Products:    %s\n", r.Input.Products)
	fmt.Fprintf(w, "   Solvent:     %s\n", r.Input.Solvent)
	if r.Input.Catalyst != "" {
		fmt.Fprintf(w, "   Catalyst:    %s\n", r.Input.Catalyst)
	}
	fmt.Fprintf(w, "   Temperature: %s°C\n\n", r.Input.Temperature)

	if len(r.Result.Issues) > 0 {
		yellow.Fprintln(w, "⚠️  ENVIRONMENTAL ISSUES:")
		for i, issue := range r.Result.Issues {
			fmt.Fprintf(w, "   %d. %s\n", i+1, issue.Title)
			fmt.Fprintf(w, "      %s\n", issue.Description)
		}
		fmt.Fprintln(w)
	}

	green.Fprintln(w, "♻️  GREEN ALTERNATIVES:")
	for i, s := range r.Result.Suggestions {
		fmt.Fprintf(w, "   %d. %s\n", i+1, s.Title)
		fmt.Fprintf(w, "      %s\n", s.Description)
	}
	fmt.Fprintln(w)

	cyan.Fprintln(w, "⚡ ENERGY EFFICIENCY TIPS:")
	for i, tip := range r.Result.EnergyTips {
		fmt.Fprintf(w, "   %d. %s\n", i+1, tip.Title)
		fmt.Fprintf(w, "      %s\n", tip.Description)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func ratingColor(rating chemistry.EcoRating) *color.Color {
	switch rating {
	case chemistry.EcoRatingGood:
		return color.New(color.FgGreen, color.Bold)
	case chemistry.EcoRatingModerate:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}
