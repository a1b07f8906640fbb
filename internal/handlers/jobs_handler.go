package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ma593y/seeklyzer/internal/models"
	"github.com/ma593y/seeklyzer/internal/repositories"
	"github.com/ma593y/seeklyzer/internal/services"
)

type JobsHandler struct {
	searchService services.SearchService
	assessor      services.AssessorService
	pdfParser     services.PDFParserService
	docRepo       repositories.DocumentRepository
	completion    services.CompletionService
	jobIndex      services.JobIndexService
}

func NewJobsHandler(
	searchService services.SearchService,
	assessor services.AssessorService,
	pdfParser services.PDFParserService,
	docRepo repositories.DocumentRepository,
	completion services.CompletionService,
	jobIndex services.JobIndexService,
) *JobsHandler {
	return &JobsHandler{
		searchService: searchService,
		assessor:      assessor,
		pdfParser:     pdfParser,
		docRepo:       docRepo,
		completion:    completion,
		jobIndex:      jobIndex,
	}
}

// HandleSearch handles POST /jobs/search
func (h *JobsHandler) HandleSearch(c *fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	outcome, err := h.searchService.Search(c.Context(), req.Query)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(models.SearchResponse{
		Filters:  outcome.Filters,
		Degraded: outcome.Degraded,
		Count:    len(outcome.Jobs),
		Jobs:     outcome.Jobs,
	})
}

// HandleGetJob handles GET /jobs/:id
func (h *JobsHandler) HandleGetJob(c *fiber.Ctx) error {
	rec, err := h.searchService.GetJob(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(rec)
}

// HandleSimilar handles POST /jobs/similar
func (h *JobsHandler) HandleSimilar(c *fiber.Ctx) error {
	var req models.SimilarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}
	if req.Limit <= 0 || req.Limit > 50 {
		req.Limit = 10
	}

	embedding, err := h.completion.GenerateEmbedding(c.Context(), req.Query)
	if err != nil {
		return errorResponse(c, err)
	}

	matches, err := h.jobIndex.SearchSimilar(c.Context(), embedding, req.Limit)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Similarity search failed. Run the indexing script and check the Qdrant connection.",
			"cause": err.Error(),
		})
	}

	resp := models.SimilarResponse{Count: len(matches), Matches: make([]models.SimilarMatch, 0, len(matches))}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, models.SimilarMatch{
			JobID: m.JobID,
			Score: m.Score,
			Text:  m.Text,
		})
	}

	return c.JSON(resp)
}

// HandleUnindexJob handles DELETE /jobs/:id. The dataset file stays
// untouched; only the job's vectors leave the similarity index.
func (h *JobsHandler) HandleUnindexJob(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.jobIndex.DeleteJob(c.Context(), id); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to remove the job from the similarity index.",
			"cause": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Job removed from the similarity index",
		"job_id":  id,
	})
}

// HandleAssess handles POST /jobs/:id/assess
func (h *JobsHandler) HandleAssess(c *fiber.Ctx) error {
	var req models.AssessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	rec, err := h.searchService.GetJob(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if rec.Details.Empty() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "This job has no extracted requirement details yet. Run the extraction script first.",
		})
	}

	resumeText, err := h.resolveResumeText(&req)
	if err != nil {
		return errorResponse(c, err)
	}
	if resumeText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Provide resume_text, a document_id, or upload a resume first.",
		})
	}

	result, err := h.assessor.Assess(c.Context(), resumeText, rec.Details)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(result)
}

// resolveResumeText resolves the résumé in precedence order: inline text, the
// named document, then the most recently uploaded resume. Empty with no error
// means no résumé exists anywhere.
func (h *JobsHandler) resolveResumeText(req *models.AssessRequest) (string, error) {
	if req.ResumeText != "" {
		return req.ResumeText, nil
	}

	var doc *models.Document
	if req.DocumentID != "" {
		docID, err := uuid.Parse(req.DocumentID)
		if err != nil {
			return "", err
		}

		doc, err = h.docRepo.FindByID(docID)
		if err != nil {
			return "", err
		}
	} else {
		var err error
		doc, err = h.docRepo.FindLatestByType(models.FileTypeResume)
		if err != nil {
			return "", nil
		}
	}

	extracted, err := h.pdfParser.ExtractText(doc.FilePath)
	if err != nil {
		return "", err
	}

	return extracted.Text, nil
}
