package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ma593y/seeklyzer/internal/models"
	"github.com/ma593y/seeklyzer/internal/repositories"
	"github.com/ma593y/seeklyzer/internal/services"
)

type ResumeHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	pdfParser      services.PDFParserService
	completion     services.CompletionService
	promptBuilder  *services.PromptBuilder
	maxFileSize    int64
}

func NewResumeHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	completion services.CompletionService,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		docRepo:        docRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		completion:     completion,
		promptBuilder:  services.NewPromptBuilder(),
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /resume/upload
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Please upload 'resume' as a PDF file.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file, models.FileTypeResume)
	if err != nil {
		return errorResponse(c, err)
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FileType:         models.FileTypeResume,
		FilePath:         filePath,
		SizeBytes:        file.Size,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save document record: %v", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "File uploaded successfully",
		"document": models.UploadResponse{
			ID:           doc.ID.String(),
			Filename:     doc.Filename,
			OriginalName: doc.OriginalFileName,
			FileType:     doc.FileType,
			SizeBytes:    doc.SizeBytes,
		},
	})
}

// HandleParse handles POST /resume/parse
func (h *ResumeHandler) HandleParse(c *fiber.Ctx) error {
	var req models.ParseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.DocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "document_id is required",
		})
	}

	docID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document_id format",
		})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found. Please upload a resume first.",
		})
	}

	extracted, err := h.pdfParser.ExtractText(doc.FilePath)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(models.ParseResponse{
		DocumentID: doc.ID.String(),
		Text:       extracted.Text,
		CharCount:  len(extracted.Text),
		PageCount:  extracted.PageCount,
	})
}

// HandleFormat handles POST /resume/format
func (h *ResumeHandler) HandleFormat(c *fiber.Ctx) error {
	var req models.FormatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No text to format. Please upload and parse a resume first.",
		})
	}

	prompt := h.promptBuilder.FormatResume(req.Text)

	start := time.Now()
	response, err := h.completion.GenerateWithRetry(c.Context(), prompt)
	if err != nil {
		return errorResponse(c, err)
	}
	elapsed := time.Since(start)

	result := services.ExtractDelimited(response, services.ResumeStartMarker, services.ResumeEndMarker)

	return c.JSON(models.FormatResponse{
		FormattedText: result.Text,
		Degraded:      result.Status == services.StatusDegraded,
		ElapsedSecs:   elapsed.Seconds(),
	})
}

// HandleExtract handles POST /resume/extract
func (h *ResumeHandler) HandleExtract(c *fiber.Ctx) error {
	var req models.ExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No text to extract. Please upload and parse a resume first.",
		})
	}

	prompt := h.promptBuilder.ExtractResumeJSON(req.Text)

	response, err := h.completion.GenerateWithRetry(c.Context(), prompt)
	if err != nil {
		return errorResponse(c, err)
	}

	result := services.ExtractJSON(response)

	return c.JSON(models.ExtractResponse{
		Resume:   result.Object,
		Degraded: result.Status == services.StatusDegraded,
	})
}

// HandleExport handles POST /resume/export
func (h *ResumeHandler) HandleExport(c *fiber.Ctx) error {
	var req models.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No content to save. Please parse and format a resume first.",
		})
	}

	var path string
	var err error
	switch req.Format {
	case "", "txt":
		path, err = h.storageService.WriteExport("formatted_resumes_files", "resume", "txt", req.Content)
	case "json":
		var v interface{}
		if jsonErr := json.Unmarshal([]byte(req.Content), &v); jsonErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Content is not valid JSON.",
			})
		}
		path, err = h.storageService.WriteJSONExport("resume_json_files", "resume", v)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "format must be 'txt' or 'json'",
		})
	}
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(models.ExportResponse{Path: path})
}
