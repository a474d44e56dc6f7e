package handler

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/makeasinger/songsmith/internal/model"
	"github.com/makeasinger/songsmith/internal/service"
	"github.com/makeasinger/songsmith/pkg/response"
)

const csvFilename = "songs.csv"

type SongHandler struct {
	service   service.SongGenerator
	validator *validator.Validate
}

func NewSongHandler(svc service.SongGenerator, v *validator.Validate) *SongHandler {
	return &SongHandler{
		service:   svc,
		validator: v,
	}
}

// Generate handles POST /api/generate
// @Summary      Generate songs
// @Description  Generate a seeded batch of songs from a genre, duration and prompt
// @Tags         Songs
// @Accept       json
// @Produce      json
// @Produce      text/csv
// @Param        request body model.GenerateRequest false "Generate request"
// @Param        format query string false "Response format" Enums(json, csv)
// @Success      200 {object} model.GenerateResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /api/generate [post]
func (h *SongHandler) Generate(c *fiber.Ctx) error {
	var req model.GenerateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.ValidationError(c, "Invalid request body", nil)
		}
	}
	if format := c.Query("format"); format != "" {
		req.Format = model.Format(format)
	}

	return h.generate(c, &req)
}

// GenerateQuery handles GET /api/generate
// @Summary      Generate songs from query parameters
// @Description  Same as POST /api/generate with the fields passed in the query string
// @Tags         Songs
// @Produce      json
// @Produce      text/csv
// @Param        genre query string false "Genre"
// @Param        duration query string false "Target duration"
// @Param        prompt query string false "Free-text prompt"
// @Param        count query int false "Number of songs (1-10)"
// @Param        seed query string false "Seed"
// @Param        format query string false "Response format" Enums(json, csv)
// @Success      200 {object} model.GenerateResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /api/generate [get]
func (h *SongHandler) GenerateQuery(c *fiber.Ctx) error {
	req := model.GenerateRequest{
		Genre:    c.Query("genre"),
		Duration: c.Query("duration"),
		Prompt:   c.Query("prompt"),
		Seed:     model.Seed(c.Query("seed")),
		Format:   model.Format(c.Query("format")),
	}

	if raw := strings.TrimSpace(c.Query("count")); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return response.ValidationError(c, "Invalid query parameters", map[string]string{"count": "int"})
		}
		req.Count = &count
	}

	return h.generate(c, &req)
}

// Arrangement handles POST /api/arrangement
// @Summary      Derive an arrangement
// @Description  Derive the seeded lead line and backing pattern for a lyric sheet
// @Tags         Arrangement
// @Accept       json
// @Produce      json
// @Param        request body model.ArrangementRequest true "Arrangement request"
// @Success      200 {object} model.ArrangementResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /api/arrangement [post]
func (h *SongHandler) Arrangement(c *fiber.Ctx) error {
	var req model.ArrangementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.Arrange(c.Context(), &req)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, result)
}

func (h *SongHandler) generate(c *fiber.Ctx, req *model.GenerateRequest) error {
	if err := h.validator.Struct(req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.Generate(c.Context(), req)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	if req.Format == model.FormatCSV {
		data, err := h.service.ExportCSV(result.Songs)
		if err != nil {
			return err
		}
		return response.CSV(c, csvFilename, data)
	}

	return response.OK(c, result)
}

// formatValidationErrors formats validator errors for response
func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}
