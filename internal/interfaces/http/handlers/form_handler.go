package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/interfaces/http/response"
)

type formService interface {
	ListQuestions(ctx context.Context, slug string) ([]*entities.FormQuestion, error)
	VisibleSteps(ctx context.Context, slug string, answers entities.Answers) ([]entities.StepQuestions, error)
	ValidateStep(ctx context.Context, slug string, step int, answers entities.Answers) (*entities.StepValidationResult, error)
	AdminListQuestions(ctx context.Context, categoryID uuid.UUID) ([]*entities.FormQuestion, error)
	CreateQuestion(ctx context.Context, input *entities.FormQuestionInput) (*entities.FormQuestion, error)
	UpdateQuestion(ctx context.Context, id uuid.UUID, input *entities.FormQuestionInput) (*entities.FormQuestion, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
}

type answersRequest struct {
	Answers entities.Answers `json:"answers"`
}

// FormHandler serves the quote form and its admin authoring
type FormHandler struct {
	forms formService
}

// NewFormHandler creates a new form handler
func NewFormHandler(forms formService) *FormHandler {
	return &FormHandler{forms: forms}
}

// ListQuestions lists the active questions of a category
// GET /api/forms/:categorySlug/questions
func (h *FormHandler) ListQuestions(c *gin.Context) {
	questions, err := h.forms.ListQuestions(c.Request.Context(), c.Param("categorySlug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// VisibleQuestions evaluates conditional display for the given answers
// POST /api/forms/:categorySlug/visible
func (h *FormHandler) VisibleQuestions(c *gin.Context) {
	var req answersRequest
	if !bindJSON(c, &req) {
		return
	}

	steps, err := h.forms.VisibleSteps(c.Request.Context(), c.Param("categorySlug"), req.Answers)
	if err != nil {
		response.Error(c, err)
		return
	}
	if steps == nil {
		steps = []entities.StepQuestions{}
	}

	response.Success(c, http.StatusOK, gin.H{"steps": steps})
}

// ValidateStep reports whether the customer may leave a step
// POST /api/forms/:categorySlug/steps/:step/validate
func (h *FormHandler) ValidateStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid step number"))
		return
	}

	var req answersRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.forms.ValidateStep(c.Request.Context(), c.Param("categorySlug"), step, req.Answers)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if !result.Complete || len(result.Invalid) > 0 {
		status = http.StatusUnprocessableEntity
	}
	response.Success(c, status, result)
}

// AdminListQuestions lists every non-deleted question of a category
// GET /api/admin/questions?service_category_id=
func (h *FormHandler) AdminListQuestions(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Query("service_category_id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("service_category_id must be a valid id"))
		return
	}

	questions, err := h.forms.AdminListQuestions(c.Request.Context(), categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// CreateQuestion creates a form question
// POST /api/admin/questions
func (h *FormHandler) CreateQuestion(c *gin.Context) {
	var input entities.FormQuestionInput
	if !bindJSON(c, &input) {
		return
	}

	question, err := h.forms.CreateQuestion(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, question)
}

// UpdateQuestion replaces a form question
// PUT /api/admin/questions/:id
func (h *FormHandler) UpdateQuestion(c *gin.Context) {
	id, ok := uuidParam(c, "id", "question ID")
	if !ok {
		return
	}

	var input entities.FormQuestionInput
	if !bindJSON(c, &input) {
		return
	}

	question, err := h.forms.UpdateQuestion(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, question)
}

// DeleteQuestion soft-deletes a form question
// DELETE /api/admin/questions/:id
func (h *FormHandler) DeleteQuestion(c *gin.Context) {
	id, ok := uuidParam(c, "id", "question ID")
	if !ok {
		return
	}

	if err := h.forms.DeleteQuestion(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Question deleted"})
}
