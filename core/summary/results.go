// ABOUTME: Results service loads the five paper rows shown for a field
// ABOUTME: Falls back from the remote papers table to the demo catalog so a list is always complete

package summary

import (
	"context"

	"mowakeb-api/core/domain"
	"mowakeb-api/core/interfaces"
	"mowakeb-api/pkg/utils/html"
)

// ResultList is a complete result list for one field
type ResultList struct {
	Heading string             `json:"heading"`
	Field   string             `json:"field"`
	Rows    []domain.ResultRow `json:"rows"`
}

// ResultsService resolves result lists
type ResultsService struct {
	papers  interfaces.PaperStore
	catalog *Catalog
	logger  interfaces.Logger
}

// NewResultsService creates a results service. papers may be nil, in which
// case every list comes from the demo catalog.
func NewResultsService(papers interfaces.PaperStore, catalog *Catalog, logger interfaces.Logger) *ResultsService {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &ResultsService{
		papers:  papers,
		catalog: catalog,
		logger:  logger,
	}
}

// Load returns exactly domain.ResultRowCount rows for fieldLabel. Remote
// papers come first; an error, an empty answer or a missing store selects
// the demo table, and a short answer is padded from it.
func (s *ResultsService) Load(ctx context.Context, fieldLabel string) ResultList {
	list := ResultList{
		Heading: domain.ResultsHeading(fieldLabel),
		Field:   fieldLabel,
	}
	demo := s.catalog.DemoRows(fieldLabel)

	if s.papers == nil {
		s.logger.Warn("Papers store not configured, using demo papers", map[string]interface{}{
			"field": fieldLabel,
		})
		list.Rows = demo
		return list
	}

	mainField := domain.MainField(fieldLabel)
	papers, err := s.papers.ListByMainField(ctx, mainField, domain.ResultRowCount)
	if err != nil {
		s.logger.Error("Error loading papers", map[string]interface{}{
			"main_field": mainField,
			"error":      err.Error(),
		})
		list.Rows = demo
		return list
	}
	if len(papers) == 0 {
		s.logger.Info("No papers found for main field", map[string]interface{}{
			"main_field": mainField,
		})
		list.Rows = demo
		return list
	}

	rows := make([]domain.ResultRow, 0, domain.ResultRowCount)
	for i, p := range papers {
		if i == domain.ResultRowCount {
			break
		}
		p.Abstract = html.StripHTML(p.Abstract)
		rows = append(rows, domain.ResultRowFromPaper(p, i))
	}
	rows = append(rows, demo[len(rows):]...)

	list.Rows = rows
	return list
}
