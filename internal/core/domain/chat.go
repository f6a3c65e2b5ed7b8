package domain

// CompletionRequest is the assembled payload for one completion call.
// History carries user/assistant turns only, in original order, untruncated.
// DocumentContext is the rendered document block; empty means absent (the
// upstream call must not send an empty context field).
type CompletionRequest struct {
	Message         string
	History         []Turn
	DocumentContext string
}

// ChatRequest is the /chat request body. ConversationHistory and PDFContext
// are optional: when either is present the call is a stateless pass-through
// and the server-side session stores are not consulted.
type ChatRequest struct {
	Message             string  `json:"message"`
	ConversationHistory []Turn  `json:"conversation_history,omitempty"`
	PDFContext          *string `json:"pdf_context,omitempty"`
}

// ChatResponse is the /chat success body.
type ChatResponse struct {
	Reply  string `json:"reply"`
	Source string `json:"source"`
}
