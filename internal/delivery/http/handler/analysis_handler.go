package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/site-analysis-service/internal/config"
	"github.com/site-analysis-service/internal/domain"
	"github.com/site-analysis-service/internal/pkg/errors"
	"github.com/site-analysis-service/internal/pkg/utils"
	"github.com/site-analysis-service/internal/pkg/validator"
	"github.com/site-analysis-service/internal/usecase"
	"github.com/site-analysis-service/internal/usecase/dto"
)

// AnalysisHandler serves CSV upload analysis and result download.
type AnalysisHandler struct {
	analysisUC *usecase.AnalysisUseCase
	defaults   config.AnalysisConfig
	logger     *zap.Logger
}

func NewAnalysisHandler(analysisUC *usecase.AnalysisUseCase, defaults config.AnalysisConfig, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUC: analysisUC,
		defaults:   defaults,
		logger:     logger,
	}
}

// Analyze godoc
// @Summary Analyze a set of geographic sites
// @Description Uploads a CSV with columns site_id, lat, lon, cluster_id and computes per-site neighbor density, co-location groups and an area classification (Rural / Suburban / Urban / Dense). Returns a summary, a preview of the first rows and a short-lived download link for the full annotated CSV.
// @Tags Analysis
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file with site_id, lat, lon, cluster_id columns"
// @Param radius_km query number false "Density search radius in kilometers" default(2.0)
// @Param co_location_threshold_m query number false "Co-location grouping distance in meters" default(100.0)
// @Param classification_mode query string false "Classification strategy" Enums(quantile, threshold) default(quantile)
// @Param rural_threshold query number false "Rural upper bound in sites/km² (threshold mode)" default(10.0)
// @Param suburban_threshold query number false "Suburban upper bound in sites/km² (threshold mode)" default(50.0)
// @Param urban_threshold query number false "Urban upper bound in sites/km² (threshold mode)" default(200.0)
// @Success 200 {object} utils.SuccessResponse{data=dto.AnalyzeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/analyze [post]
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("CSV file is required in the 'file' form field"))
	}

	req := dto.AnalyzeRequest{
		RadiusKm:             c.QueryFloat("radius_km", h.defaults.RadiusKm),
		CoLocationThresholdM: c.QueryFloat("co_location_threshold_m", h.defaults.CoLocationThresholdM),
		ClassificationMode:   c.Query("classification_mode", string(domain.ModeQuantile)),
		RuralThreshold:       c.QueryFloat("rural_threshold", domain.DefaultRuralThreshold),
		SuburbanThreshold:    c.QueryFloat("suburban_threshold", domain.DefaultSuburbanThreshold),
		UrbanThreshold:       c.QueryFloat("urban_threshold", domain.DefaultUrbanThreshold),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Unable to read uploaded file"))
	}
	defer file.Close()

	result, err := h.analysisUC.Analyze(c.Context(), file, req.ToOptions())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.RowsAnalyzed,
	})
}

// Download godoc
// @Summary Download a full annotated result
// @Description Returns the complete annotated CSV for a previous analysis. Results expire after the configured TTL.
// @Tags Analysis
// @Produce text/csv
// @Param id path string true "Analysis ID returned by /analyze"
// @Success 200 {string} string "Annotated CSV"
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/analyses/{id}/download [get]
func (h *AnalysisHandler) Download(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Analysis ID required"))
	}

	data, err := h.analysisUC.Download(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="analysis_%s.csv"`, id))
	return c.Send(data)
}
