package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"green-chemistry-helper/internal/pkg/common"

	"gopkg.in/yaml.v3"
)

// 匯出格式
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Document 匯出後的文件內容
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Render 將報告輸出為指定格式，空字串視為 markdown
func Render(r *Report, format string) (*Document, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "", FormatMarkdown, "md":
		return &Document{
			Filename:    r.ID + ".md",
			ContentType: "text/markdown; charset=utf-8",
			Body:        renderMarkdown(r),
		}, nil
	case FormatJSON:
		body, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to render json: %w", err)
		}
		return &Document{
			Filename:    r.ID + ".json",
			ContentType: "application/json; charset=utf-8",
			Body:        body,
		}, nil
	case FormatYAML, "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return nil, fmt.Errorf("failed to render yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to render yaml: %w", err)
		}
		return &Document{
			Filename:    r.ID + ".yaml",
			ContentType: "application/yaml; charset=utf-8",
			Body:        buf.Bytes(),
		}, nil
	default:
		return nil, common.ErrUnsupportedFormat.WithErr(fmt.Errorf("format %q", format))
	}
}

func renderMarkdown(r *Report) []byte {
	var b strings.Builder

	b.WriteString("# Reaction Analysis Results\n\n")
	fmt.Fprintf(&b, "- Report ID: %s\n", r.ID)
	fmt.Fprintf(&b, "- Created: %s\n", r.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- Eco-Rating: **%s**\n\n", r.Result.EcoRating)

	b.WriteString("## Reaction Details\n\n")
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Reactants | %s |\n", mdCell(r.Input.Reactants))
	fmt.Fprintf(&b, "| Products | %s |\n", mdCell(orDash(r.Input.Products)))
	fmt.Fprintf(&b, "| Solvent | %s |\n", mdCell(r.Input.Solvent))
	fmt.Fprintf(&b, "| Catalyst | %s |\n", mdCell(orDash(r.Input.Catalyst)))
	fmt.Fprintf(&b, "| Temperature | %s |\n\n", mdCell(orDash(r.Input.Temperature)))

	section := func(title string, n int, item func(i int) (string, string)) {
		fmt.Fprintf(&b, "## %s\n\n", title)
		if n == 0 {
			b.WriteString("None.\n\n")
			return
		}
		for i := 0; i < n; i++ {
			t, d := item(i)
			fmt.Fprintf(&b, "- **%s**: %s\n", t, d)
		}
		b.WriteString("\n")
	}

	res := r.Result
	section("Environmental Issues", len(res.Issues), func(i int) (string, string) {
		return res.Issues[i].Title, res.Issues[i].Description
	})
	section("Green Alternatives", len(res.Suggestions), func(i int) (string, string) {
		return res.Suggestions[i].Title, res.Suggestions[i].Description
	})
	section("Energy Efficiency Tips", len(res.EnergyTips), func(i int) (string, string) {
		return res.EnergyTips[i].Title, res.EnergyTips[i].Description
	})

	return []byte(strings.TrimRight(b.String(), "\n") + "\n")
}

func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
