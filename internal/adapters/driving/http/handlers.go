package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/rezumai/rezum-core/internal/core/domain"
	"github.com/rezumai/rezum-core/internal/core/ports/driving"
)

// maxUploadBytes caps multipart memory buffering for uploads
const maxUploadBytes = 32 << 20

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Detail string `json:"detail" example:"message is required"`
}

// HealthResponse represents the health check response
// @Description Health check response
type HealthResponse struct {
	Status           string `json:"status" example:"ok"`
	GeminiConfigured bool   `json:"gemini_configured" example:"true"`
}

// UploadResponse represents a successful single-file upload
// @Description Extracted document content
type UploadResponse struct {
	Filename      string `json:"filename" example:"resume.pdf"`
	ExtractedText string `json:"extracted_text"`
}

// BatchUploadResult is the per-file outcome of a batch upload
// @Description Per-file result of a batch upload
type BatchUploadResult struct {
	Filename      string `json:"filename"`
	ExtractedText string `json:"extracted_text,omitempty"`
	Detail        string `json:"detail,omitempty"`
}

// BatchUploadResponse wraps the per-file outcomes of a batch upload
// @Description Batch upload results
type BatchUploadResponse struct {
	Results []BatchUploadResult `json:"results"`
}

// ConversationResponse holds the persisted turn sequence
// @Description The session's conversation history
type ConversationResponse struct {
	Turns []domain.Turn `json:"turns"`
}

// DocumentSummary describes one stored document without its full text
// @Description One stored document
type DocumentSummary struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	TextLength int    `json:"text_length"`
}

// DocumentsResponse holds the session's stored documents
// @Description The session's stored documents
type DocumentsResponse struct {
	Documents []DocumentSummary `json:"documents"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// handleHealth godoc
// @Summary      Health check
// @Description  Returns process health and whether the completion provider has credentials
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:           "ok",
		GeminiConfigured: s.sessionService.ProviderConfigured(),
	})
}

// handleChat godoc
// @Summary      Send a chat message
// @Description  Sends one user message to the model. Without conversation_history or pdf_context the server-side session stores supply and record the conversation; with either present the call is a stateless pass-through.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header    string             false  "Client session identity"
// @Param        request       body      domain.ChatRequest true   "Chat message"
// @Success      200           {object}  domain.ChatResponse
// @Failure      400           {object}  ErrorResponse  "Missing message"
// @Failure      500           {object}  ErrorResponse  "Provider not configured or store failure"
// @Failure      502           {object}  ErrorResponse  "Upstream completion failed"
// @Router       /chat [post]
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	if req.ConversationHistory != nil || req.PDFContext != nil {
		s.handleStatelessChat(w, r, req)
		return
	}

	turn, err := s.sessionService.Send(r.Context(), sessionID(r), req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing chat: %v", err))
		return
	}

	if turn.Role == domain.RoleError {
		writeError(w, http.StatusBadGateway, turn.Text)
		return
	}

	writeJSON(w, http.StatusOK, domain.ChatResponse{
		Reply:  turn.Text,
		Source: s.sessionService.Source(),
	})
}

// handleStatelessChat serves clients that manage their own history, matching
// the original pass-through backend behavior: nothing touches session state.
func (s *Server) handleStatelessChat(w http.ResponseWriter, r *http.Request, req domain.ChatRequest) {
	history := make([]domain.Turn, 0, len(req.ConversationHistory))
	for _, turn := range req.ConversationHistory {
		if turn.Role.Dialogue() {
			history = append(history, turn)
		}
	}

	completionReq := domain.CompletionRequest{
		Message: req.Message,
		History: history,
	}
	if req.PDFContext != nil {
		completionReq.DocumentContext = *req.PDFContext
	}

	resp, err := s.sessionService.Complete(r.Context(), completionReq)
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			writeError(w, http.StatusInternalServerError,
				"Gemini API key not configured. Please set GEMINI_API_KEY in .env file")
			return
		}
		writeError(w, http.StatusBadGateway, fmt.Sprintf("Error processing chat: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleGetConversation godoc
// @Summary      Get conversation history
// @Tags         Chat
// @Produce      json
// @Param        X-Session-ID  header    string  false  "Client session identity"
// @Success      200           {object}  ConversationResponse
// @Failure      500           {object}  ErrorResponse
// @Router       /conversation [get]
func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	turns, err := s.sessionService.History(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}
	writeJSON(w, http.StatusOK, ConversationResponse{Turns: turns})
}

// handleClearConversation godoc
// @Summary      Clear conversation history
// @Description  Empties the conversation; replies still in flight for the cleared history are dropped.
// @Tags         Chat
// @Produce      json
// @Param        X-Session-ID  header    string  false  "Client session identity"
// @Success      200           {object}  StatusResponse
// @Failure      500           {object}  ErrorResponse
// @Router       /conversation [delete]
func (s *Server) handleClearConversation(w http.ResponseWriter, r *http.Request) {
	if err := s.sessionService.ClearConversation(r.Context(), sessionID(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear conversation")
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleUploadPDF godoc
// @Summary      Upload one PDF
// @Description  Extracts text from the uploaded PDF and stores it as session document context.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Session-ID  header    string  false  "Client session identity"
// @Param        file          formData  file    true   "PDF file"
// @Success      200           {object}  UploadResponse
// @Failure      400           {object}  ErrorResponse  "Not a PDF"
// @Failure      409           {object}  ErrorResponse  "Document capacity exceeded"
// @Failure      422           {object}  ErrorResponse  "Extraction failed"
// @Router       /upload-pdf [post]
func (s *Server) handleUploadPDF(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	upload, err := readUpload(file, header)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	outcomes := s.sessionService.UploadDocuments(r.Context(), sessionID(r), []driving.UploadFile{upload})
	outcome := outcomes[0]
	if outcome.Err != nil {
		writeError(w, uploadStatus(outcome.Err), outcome.Err.Error())
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Filename:      outcome.Filename,
		ExtractedText: outcome.Document.Text,
	})
}

// handleUploadPDFBatch godoc
// @Summary      Upload multiple PDFs
// @Description  Applies the single-upload semantics per file; one rejected file never aborts its siblings.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Session-ID  header    string  false  "Client session identity"
// @Param        files         formData  file    true   "PDF files"
// @Success      200           {object}  BatchUploadResponse
// @Failure      400           {object}  ErrorResponse  "Malformed upload"
// @Router       /upload-pdfs-batch [post]
func (s *Server) handleUploadPDFBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "files field is required")
		return
	}

	uploads := make([]driving.UploadFile, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read upload")
			return
		}
		upload, err := readUpload(file, header)
		file.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read upload")
			return
		}
		uploads = append(uploads, upload)
	}

	outcomes := s.sessionService.UploadDocuments(r.Context(), sessionID(r), uploads)

	results := make([]BatchUploadResult, 0, len(outcomes))
	for _, outcome := range outcomes {
		result := BatchUploadResult{Filename: outcome.Filename}
		if outcome.Err != nil {
			result.Detail = outcome.Err.Error()
		} else {
			result.ExtractedText = outcome.Document.Text
		}
		results = append(results, result)
	}
	writeJSON(w, http.StatusOK, BatchUploadResponse{Results: results})
}

// handleListDocuments godoc
// @Summary      List stored documents
// @Tags         Documents
// @Produce      json
// @Param        X-Session-ID  header    string  false  "Client session identity"
// @Success      200           {object}  DocumentsResponse
// @Failure      500           {object}  ErrorResponse
// @Router       /documents [get]
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.sessionService.Documents(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load documents")
		return
	}

	summaries := make([]DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, DocumentSummary{
			Name:       doc.Name,
			Size:       doc.Size,
			TextLength: len(doc.Text),
		})
	}
	writeJSON(w, http.StatusOK, DocumentsResponse{Documents: summaries})
}

// handleClearDocuments godoc
// @Summary      Clear stored documents
// @Tags         Documents
// @Produce      json
// @Param        X-Session-ID  header    string  false  "Client session identity"
// @Success      200           {object}  StatusResponse
// @Failure      500           {object}  ErrorResponse
// @Router       /documents [delete]
func (s *Server) handleClearDocuments(w http.ResponseWriter, r *http.Request) {
	if err := s.sessionService.ClearDocuments(r.Context(), sessionID(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear documents")
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleRemoveDocument godoc
// @Summary      Remove one stored document
// @Description  Removes the document at the given zero-based position; out-of-bounds positions are a no-op.
// @Tags         Documents
// @Produce      json
// @Param        X-Session-ID  header    string  false  "Client session identity"
// @Param        index         path      int     true   "Zero-based document position"
// @Success      200           {object}  StatusResponse
// @Failure      400           {object}  ErrorResponse  "Invalid index"
// @Failure      500           {object}  ErrorResponse
// @Router       /documents/{index} [delete]
func (s *Server) handleRemoveDocument(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	if err := s.sessionService.RemoveDocument(r.Context(), sessionID(r), index); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove document")
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// Helper functions

func readUpload(file multipart.File, header *multipart.FileHeader) (driving.UploadFile, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return driving.UploadFile{}, err
	}
	return driving.UploadFile{Name: header.Filename, Data: data}, nil
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}
