package handler

import (
	"context"
	"encoding/base64"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"bidtab/internal/domain"
	"bidtab/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExtractionService is the service surface the extraction endpoints need.
type ExtractionService interface {
	Generate(ctx context.Context, projectName string, files []service.UploadedFile, cover domain.CoverInfo) (*service.GenerateResult, error)
	GenerateLegacy(ctx context.Context, projectName string, files []service.UploadedFile) ([]byte, string, error)
	Refine(ctx context.Context, current domain.ExtractionDocument, documentContext string, history []domain.Message, userMessage string) (*service.RefineOutcome, error)
}

// ExtractionHandler handles bid extraction endpoints.
type ExtractionHandler struct {
	svc ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(svc ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{svc: svc}
}

// refineRequest is the JSON body for POST /api/v1/extractions/refine.
type refineRequest struct {
	ProjectName         string                    `json:"project_name"`
	DocumentContext     string                    `json:"document_context"`
	CurrentExtraction   domain.ExtractionDocument `json:"current_extraction"`
	ConversationHistory []domain.Message          `json:"conversation_history"`
	UserMessage         string                    `json:"user_message" binding:"required"`
}

// Generate handles POST /api/v1/extractions/generate
// @Summary Generate all ten bid tables
// @Description Upload bid documents (PDF, DOCX, or plain text) and extract all ten tables plus the branded workbook
// @Tags extractions
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Bid documents"
// @Param project_name formData string false "Project name"
// @Param created_by formData string false "Preparer name for the cover page"
// @Param company formData string false "Preparer company"
// @Param phone formData string false "Preparer phone"
// @Param email formData string false "Preparer email"
// @Success 200 {object} APIResponse "Extraction JSON, document context, and base64 workbook"
// @Failure 400 {object} APIResponse "No files or unsupported file type"
// @Failure 502 {object} APIResponse "Model returned unusable output"
// @Router /extractions/generate [post]
func (h *ExtractionHandler) Generate(c *gin.Context) {
	files, ok := readUploads(c)
	if !ok {
		return
	}
	projectName := c.DefaultPostForm("project_name", "Northlake Project")
	cover := domain.CoverInfo{
		CreatedBy: c.PostForm("created_by"),
		Company:   c.PostForm("company"),
		Phone:     c.PostForm("phone"),
		Email:     c.PostForm("email"),
	}

	res, err := h.svc.Generate(c.Request.Context(), projectName, files, cover)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"extraction":       res.Extraction,
		"document_context": res.DocumentContext,
		"excel_base64":     base64.StdEncoding.EncodeToString(res.Excel),
		"filename":         res.Filename,
	})
}

// GenerateXLSX handles POST /api/v1/extractions/generate-xlsx
// @Summary Generate the original three-table workbook
// @Description Upload bid documents and download the three-table workbook as an attachment
// @Tags extractions
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param files formData file true "Bid documents"
// @Param project_name formData string false "Project name"
// @Success 200 {file} binary "Workbook attachment"
// @Failure 400 {object} APIResponse "No files or unsupported file type"
// @Failure 502 {object} APIResponse "Model returned unusable output"
// @Router /extractions/generate-xlsx [post]
func (h *ExtractionHandler) GenerateXLSX(c *gin.Context) {
	files, ok := readUploads(c)
	if !ok {
		return
	}
	projectName := c.DefaultPostForm("project_name", "Northlake 7-Eleven")

	xlsx, filename, err := h.svc.GenerateLegacy(c.Request.Context(), projectName, files)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, xlsx)
}

// Refine handles POST /api/v1/extractions/refine
// @Summary Apply one conversational correction turn
// @Description Send the current extraction, the conversation so far, and a correction instruction; returns the updated extraction and workbook
// @Tags extractions
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse "Updated extraction and base64 workbook"
// @Failure 400 {object} APIResponse "Invalid body or refinement limit reached"
// @Failure 502 {object} APIResponse "Model returned unusable output"
// @Router /extractions/refine [post]
func (h *ExtractionHandler) Refine(c *gin.Context) {
	var req refineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	out, err := h.svc.Refine(c.Request.Context(), req.CurrentExtraction, req.DocumentContext, req.ConversationHistory, req.UserMessage)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"extraction":            out.Extraction,
		"excel_base64":          base64.StdEncoding.EncodeToString(out.Excel),
		"refinements_used":      out.RefinementsUsed,
		"refinements_remaining": out.RefinementsRemaining,
	})
}

// readUploads reads every "files" part into memory. Writes the error response
// itself when the form is unusable.
func readUploads(c *gin.Context) ([]service.UploadedFile, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "multipart form is required")
		return nil, false
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "NO_FILES", "at least one file is required")
		return nil, false
	}

	files := make([]service.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readUpload(fh)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file "+fh.Filename)
			return nil, false
		}
		files = append(files, service.UploadedFile{Name: fh.Filename, Data: data})
	}
	return files, true
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
