package summary

import (
	"testing"

	"mowakeb-api/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_HasEveryField(t *testing.T) {
	c := DefaultCatalog()

	for _, field := range append([]string{defaultKey}, domain.CanonicalFields...) {
		assert.Len(t, c.Papers[field], domain.ResultRowCount, field)
		assert.NotEmpty(t, c.Fields[field].Long, field)
	}
	for _, field := range domain.CanonicalFields {
		for _, p := range c.Papers[field] {
			assert.NotEmpty(t, c.PaperSummaries[field][p.Title].Long, p.Title)
		}
	}
}

func TestDemoRows_AlwaysFiveRows(t *testing.T) {
	c := DefaultCatalog()
	labels := append([]string{"", "Quantum Biology", "ai", "Cloud infrastructure"}, domain.CanonicalFields...)

	for _, label := range labels {
		rows := c.DemoRows(label)
		require.Len(t, rows, domain.ResultRowCount, label)
		for _, row := range rows {
			assert.NotEmpty(t, row.Title)
			assert.Equal(t, domain.SourceDemo, row.Source)
		}
	}
}

func TestDemoRows_ShortTableRepeatsLastPaper(t *testing.T) {
	c, err := ParseCatalog([]byte(`
papers:
  default:
    - title: "Only one"
      summary: "one"
    - title: "Last"
      summary: "last"
`))
	require.NoError(t, err)

	rows := c.DemoRows("anything")

	require.Len(t, rows, 5)
	assert.Equal(t, "Only one", rows[0].Title)
	for _, row := range rows[1:] {
		assert.Equal(t, "Last", row.Title)
	}
}

func TestParseCatalog_RequiresDefaultTable(t *testing.T) {
	_, err := ParseCatalog([]byte("papers: {}\n"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("papers: [\n"))
	assert.Error(t, err)
}

func TestParseCatalog_RejectsUnknownField(t *testing.T) {
	_, err := ParseCatalog([]byte(`
papers:
  default:
    - title: "x"
fields:
  "Securty & Privacy":
    short: "typo"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Securty & Privacy")
}

func TestShortText_PreferenceOrder(t *testing.T) {
	c, err := ParseCatalog([]byte(`
papers:
  default:
    - title: "x"
fields:
  "Security & Privacy":
    short: "field short"
    long: "field long"
  "Applied AI":
    short: "applied short"
paper_summaries:
  "Security & Privacy":
    "Both":
      short: "paper short"
      long: "paper long"
    "Short only":
      short: "paper short only"
`))
	require.NoError(t, err)

	tests := []struct {
		name  string
		field string
		title string
		want  string
	}{
		{name: "paper long wins", field: "Security & Privacy", title: "Both", want: "paper long"},
		{name: "paper short when no long", field: "security", title: "Short only", want: "paper short only"},
		{name: "field long", field: "Security & Privacy", title: "Unknown", want: "field long"},
		{name: "field short", field: "Applied AI", title: "Unknown", want: "applied short"},
		{name: "placeholder", field: "Systems", title: "Unknown", want: domain.PlaceholderSummary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ShortText(tt.field, tt.title))
		})
	}
}

func TestShortText_DefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	got := c.ShortText(domain.FieldSecurity, "Paper 1 – Threat Modeling for Web Applications")
	assert.Contains(t, got, "identifying assets, entry points, and attacker goals")

	got = c.ShortText(domain.FieldSecurity, "Some remote paper")
	assert.Equal(t, c.Fields[domain.FieldSecurity].Long, got)

	assert.Equal(t, "Paper 1 – Scalable Microservices for AI Workloads", c.FirstTitle("systems"))
}
