package handler

import (
	"log/slog"
	"net/http"

	"bulletin/internal/delivery/api/middleware"
	"bulletin/internal/delivery/api/response"
	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type JobHandlerParams struct {
	fx.In

	JobUC  usecase.JobUsecase
	Logger *slog.Logger
}

type JobHandler struct {
	jobUC  usecase.JobUsecase
	logger *slog.Logger
}

func NewJobHandler(params JobHandlerParams) *JobHandler {
	return &JobHandler{
		jobUC:  params.JobUC,
		logger: params.Logger,
	}
}

type CreateJobRequest struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Description  string  `json:"description" validate:"required"`
	ContactEmail string  `json:"contactEmail" validate:"required,email"`
	ContactPhone *string `json:"contactPhone" validate:"omitempty,max=32"`
	Company      string  `json:"company" validate:"required"`
	Salary       string  `json:"salary" validate:"required"`
	Location     string  `json:"location" validate:"required"`
	JobType      string  `json:"jobType" validate:"required,oneof=fulltime parttime contract intern"`
	Requirements *string `json:"requirements"`
}

type UpdateJobRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string `json:"description" validate:"omitempty,min=1"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone *string `json:"contactPhone" validate:"omitempty,max=32"`
	Company      *string `json:"company" validate:"omitempty,min=1"`
	Salary       *string `json:"salary" validate:"omitempty,min=1"`
	Location     *string `json:"location" validate:"omitempty,min=1"`
	JobType      *string `json:"jobType"`
	Requirements *string `json:"requirements"`
	Status       *string `json:"status"`
}

func (h *JobHandler) Create(c echo.Context) error {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	var req CreateJobRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	job, err := h.jobUC.CreateJob(c.Request().Context(), actor, usecase.CreateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Company:      req.Company,
		Salary:       req.Salary,
		Location:     req.Location,
		JobType:      entity.JobType(req.JobType),
		Requirements: req.Requirements,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, job)
}

func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.jobUC.ListJobs(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, jobs)
}

func (h *JobHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrJobNotFound)
	}

	job, err := h.jobUC.GetJob(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, job)
}

func (h *JobHandler) Update(c echo.Context) error {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	id, ok := pathID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrJobNotFound)
	}

	var req UpdateJobRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	input := usecase.UpdateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Company:      req.Company,
		Salary:       req.Salary,
		Location:     req.Location,
		Requirements: req.Requirements,
	}
	if req.JobType != nil {
		jobType := entity.JobType(*req.JobType)
		input.JobType = &jobType
	}
	if req.Status != nil {
		status := entity.JobStatus(*req.Status)
		input.Status = &status
	}

	job, err := h.jobUC.UpdateJob(c.Request().Context(), actor, id, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, job)
}

func (h *JobHandler) Delete(c echo.Context) error {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	id, ok := pathID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrJobNotFound)
	}

	if err := h.jobUC.DeleteJob(c.Request().Context(), actor, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}
