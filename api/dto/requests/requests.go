// ABOUTME: Request DTOs for the Mowakeb API
// ABOUTME: Struct tags drive huma validation and the generated OpenAPI document

package requests

// SignInRequest records the identity returned by the identity provider
type SignInRequest struct {
	ID    string `json:"id,omitempty" doc:"Identity provider user id"`
	Name  string `json:"name,omitempty" doc:"Display name"`
	Email string `json:"email" minLength:"3" doc:"Email, used as the tracker owner"`
	Field string `json:"field,omitempty" doc:"Preferred research field" example:"AI"`
}

// FieldPreferenceRequest updates the preferred field
type FieldPreferenceRequest struct {
	Field string `json:"field" doc:"Preferred research field; empty resets to AI"`
}

// TrackerAddRequest adds an entry from the tracker form
type TrackerAddRequest struct {
	Title  string `json:"title" minLength:"1" doc:"Paper title"`
	Status string `json:"status,omitempty" enum:"to-read,in-progress,done" doc:"Reading status, to-read when omitted"`
	Notes  string `json:"notes,omitempty" doc:"Free-text notes"`
}

// TrackerStatusRequest changes the status of an entry
type TrackerStatusRequest struct {
	Status string `json:"status" enum:"to-read,in-progress,done" doc:"New reading status"`
}

// SearchRequest submits the search form
type SearchRequest struct {
	Field string `json:"field,omitempty" doc:"Field label, AI when omitted" example:"Computer Science"`
	Topic string `json:"topic,omitempty" doc:"Free-text topic, 'Top 5 papers' when omitted"`
}

// SelectionRequest picks a row from the result list
type SelectionRequest struct {
	Title          string `json:"title" minLength:"1"`
	Description    string `json:"description,omitempty"`
	PaperID        string `json:"paperId,omitempty"`
	MainField      string `json:"mainField,omitempty"`
	SubField       string `json:"subField,omitempty"`
	StoredHTMLPath string `json:"storedHtmlPath,omitempty"`
	PDFURL         string `json:"pdfUrl,omitempty"`
	PublishedAt    string `json:"publishedAt,omitempty"`
}

// AudioFinishedRequest reports that a clip played to its end
type AudioFinishedRequest struct {
	ClipID string `json:"clipId,omitempty" doc:"Clip that finished; empty matches the live clip"`
}

// AskRequest posts a question to the chatbot
type AskRequest struct {
	Question string `json:"question" doc:"Question about the uploaded PDF"`
}
