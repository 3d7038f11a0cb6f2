// ABOUTME: Search, results and selection handlers for the Huma API
// ABOUTME: Persist the last search and the picked paper, and list five papers per field

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"mowakeb-api/api/dto/requests"
	"mowakeb-api/api/dto/responses"
	"mowakeb-api/core/domain"
)

// SearchHandler handles search, results and selection requests
type SearchHandler struct {
	search  SearchService
	results ResultsService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search SearchService, results ResultsService) *SearchHandler {
	return &SearchHandler{search: search, results: results}
}

// RegisterRoutes registers the search routes
func (h *SearchHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "submitSearch",
		Method:      http.MethodPost,
		Path:        "/search",
		Summary:     "Submit a search",
		Tags:        []string{"Search"},
	}, h.Submit)

	huma.Register(api, huma.Operation{
		OperationID: "getLastSearch",
		Method:      http.MethodGet,
		Path:        "/search",
		Summary:     "Get the last search",
		Tags:        []string{"Search"},
	}, h.Last)

	huma.Register(api, huma.Operation{
		OperationID: "listResults",
		Method:      http.MethodGet,
		Path:        "/results",
		Summary:     "List five papers for a field",
		Description: "Reads the papers table and falls back to demo papers; always five rows",
		Tags:        []string{"Search"},
	}, h.Results)

	huma.Register(api, huma.Operation{
		OperationID: "selectPaper",
		Method:      http.MethodPost,
		Path:        "/selection",
		Summary:     "Pick a paper from the result list",
		Tags:        []string{"Search"},
	}, h.Select)
}

// SearchInput is the search form body
type SearchInput struct {
	Body requests.SearchRequest
}

// SearchOutput is the stored search
type SearchOutput struct {
	Body domain.SearchContext
}

// ResultsInput optionally overrides the field of the last search
type ResultsInput struct {
	Field string `query:"field" doc:"Field label; the last search field when omitted"`
}

// ResultsOutput is the result list
type ResultsOutput struct {
	Body responses.ResultsResponse
}

// SelectionInput is the picked row
type SelectionInput struct {
	Body requests.SelectionRequest
}

// SelectionOutput is the stored selection
type SelectionOutput struct {
	Body domain.SelectedPaper
}

// Submit handles POST /search
func (h *SearchHandler) Submit(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	sc, err := h.search.Submit(ctx, input.Body.Field, input.Body.Topic)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SearchOutput{Body: sc}, nil
}

// Last handles GET /search
func (h *SearchHandler) Last(ctx context.Context, _ *struct{}) (*SearchOutput, error) {
	sc, err := h.search.Last(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SearchOutput{Body: sc}, nil
}

// Results handles GET /results
func (h *SearchHandler) Results(ctx context.Context, input *ResultsInput) (*ResultsOutput, error) {
	field := input.Field
	if field == "" {
		last, err := h.search.Last(ctx)
		if err != nil {
			return nil, toHumaError(err)
		}
		field = last.Field
	}

	list := h.results.Load(ctx, field)
	return &ResultsOutput{Body: responses.ResultsResponse{
		Heading: list.Heading,
		Field:   list.Field,
		Rows:    list.Rows,
	}}, nil
}

// Select handles POST /selection
func (h *SearchHandler) Select(ctx context.Context, input *SelectionInput) (*SelectionOutput, error) {
	b := input.Body
	sel, err := h.search.Select(ctx, domain.ResultRow{
		Title:          b.Title,
		Description:    b.Description,
		PaperID:        b.PaperID,
		MainField:      b.MainField,
		SubField:       b.SubField,
		StoredHTMLPath: b.StoredHTMLPath,
		PDFURL:         b.PDFURL,
		PublishedAt:    b.PublishedAt,
	})
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SelectionOutput{Body: sel}, nil
}
