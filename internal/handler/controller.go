package handler

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/Heart-Quake/ahref-consolidation/internal/config"
	"github.com/Heart-Quake/ahref-consolidation/internal/service"
	"github.com/Heart-Quake/ahref-consolidation/pkg/analyzer"
	"github.com/Heart-Quake/ahref-consolidation/pkg/logger"
	"github.com/Heart-Quake/ahref-consolidation/pkg/parser"
)

// Controller exposes the analysis pipeline over HTTP: upload an export
// file, get back either the JSON report or the semicolon-delimited CSV.
type Controller struct {
	service service.AnalyzerService
	cfg     *config.Config
	log     *logger.Logger
}

func NewController(svc service.AnalyzerService, cfg *config.Config) *Controller {
	return &Controller{
		service: svc,
		cfg:     cfg,
		log:     logger.GetLogger().WithField("component", "controller"),
	}
}

func (c *Controller) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", c.Health)
	api.Post("/analyze", c.Analyze)
	api.Post("/export", c.Export)
}

func (c *Controller) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

// Analyze accepts a multipart upload (field "file") and responds with the
// summary statistics and the ordered URL groups as JSON.
func (c *Controller) Analyze(ctx *fiber.Ctx) error {
	raw, err := c.uploadedFile(ctx)
	if err != nil {
		return err
	}

	report, err := c.service.Analyze(ctx.UserContext(), raw)
	if err != nil {
		return c.mapAnalysisError(err)
	}
	return ctx.JSON(report)
}

// Export accepts the same upload and responds with the CSV attachment.
func (c *Controller) Export(ctx *fiber.Ctx) error {
	raw, err := c.uploadedFile(ctx)
	if err != nil {
		return err
	}

	data, err := c.service.ExportCSV(ctx.UserContext(), raw)
	if err != nil {
		return c.mapAnalysisError(err)
	}

	ctx.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", c.cfg.Export.Filename))
	return ctx.Send(data)
}

func (c *Controller) uploadedFile(ctx *fiber.Ctx) ([]byte, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, `missing upload field "file"`)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "unable to open uploaded file")
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "unable to read uploaded file")
	}
	return raw, nil
}

// mapAnalysisError translates pipeline failures to HTTP statuses. Bad
// input is the client's problem (422); everything else is ours (500).
func (c *Controller) mapAnalysisError(err error) error {
	var encodingErr *parser.EncodingError
	var formatErr *parser.FormatError
	var rowErr *parser.RowError

	switch {
	case errors.As(err, &encodingErr),
		errors.As(err, &formatErr),
		errors.As(err, &rowErr),
		errors.Is(err, analyzer.ErrNoRecords):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		c.log.WithError(err).Error("Analysis failed")
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
