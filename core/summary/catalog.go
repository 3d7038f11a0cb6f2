// ABOUTME: Demo catalog of papers and summaries keyed by canonical field
// ABOUTME: Loaded from an embedded YAML document and used when remote data is missing

package summary

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"mowakeb-api/core/domain"
)

// defaultKey names the table used for labels without their own entry
const defaultKey = "default"

//go:embed demo.yaml
var demoYAML []byte

// DemoPaper is a static result row
type DemoPaper struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

// Text is a short and a long rendition of a summary
type Text struct {
	Short string `yaml:"short"`
	Long  string `yaml:"long"`
}

// preferred returns the long text, else the short one
func (t Text) preferred() string {
	if long := strings.TrimSpace(t.Long); long != "" {
		return long
	}
	return strings.TrimSpace(t.Short)
}

// Catalog holds the demo tables
type Catalog struct {
	Papers         map[string][]DemoPaper     `yaml:"papers"`
	Fields         map[string]Text            `yaml:"fields"`
	PaperSummaries map[string]map[string]Text `yaml:"paper_summaries"`
}

// ParseCatalog decodes a catalog document. A catalog must carry a default
// paper table and may only key its tables by canonical field.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse demo catalog: %w", err)
	}
	if len(c.Papers[defaultKey]) == 0 {
		return nil, fmt.Errorf("demo catalog has no %q paper table", defaultKey)
	}

	known := map[string]bool{defaultKey: true}
	for _, f := range domain.CanonicalFields {
		known[f] = true
	}
	for table, keys := range map[string][]string{
		"papers":          keysOf(c.Papers),
		"fields":          keysOf(c.Fields),
		"paper_summaries": keysOf(c.PaperSummaries),
	} {
		for _, k := range keys {
			if !known[k] {
				return nil, fmt.Errorf("demo catalog %s table has unknown field %q", table, k)
			}
		}
	}
	return &c, nil
}

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded catalog
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := ParseCatalog(demoYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// DemoPapers returns the demo table of the normalized field, or the default
// table when the field has none
func (c *Catalog) DemoPapers(fieldLabel string) []DemoPaper {
	if papers := c.Papers[domain.NormalizeField(fieldLabel)]; len(papers) > 0 {
		return papers
	}
	return c.Papers[defaultKey]
}

// DemoRows returns exactly domain.ResultRowCount rows for the field. Short
// tables repeat their last paper.
func (c *Catalog) DemoRows(fieldLabel string) []domain.ResultRow {
	papers := c.DemoPapers(fieldLabel)
	rows := make([]domain.ResultRow, domain.ResultRowCount)
	for i := range rows {
		rows[i] = demoRow(papers, i)
	}
	return rows
}

// FirstTitle is the title used when no paper has been selected
func (c *Catalog) FirstTitle(fieldLabel string) string {
	papers := c.DemoPapers(fieldLabel)
	if len(papers) == 0 || strings.TrimSpace(papers[0].Title) == "" {
		return "Selected paper"
	}
	return papers[0].Title
}

// ShortText resolves the displayed summary of a paper. The paper's own text
// wins over the field's generic text, which wins over the placeholder; long
// renditions are preferred over short ones at each level.
func (c *Catalog) ShortText(fieldLabel, title string) string {
	field := domain.NormalizeField(fieldLabel)

	if text := c.PaperSummaries[field][title].preferred(); text != "" {
		return text
	}

	fieldText, ok := c.Fields[field]
	if !ok {
		fieldText = c.Fields[defaultKey]
	}
	if text := fieldText.preferred(); text != "" {
		return text
	}

	return domain.PlaceholderSummary
}

func demoRow(papers []DemoPaper, index int) domain.ResultRow {
	p := papers[len(papers)-1]
	if index < len(papers) {
		p = papers[index]
	}
	return domain.ResultRow{
		Title:       p.Title,
		Description: p.Summary,
		Source:      domain.SourceDemo,
	}
}
