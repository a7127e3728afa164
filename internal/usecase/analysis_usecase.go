package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/site-analysis-service/internal/analysis"
	"github.com/site-analysis-service/internal/domain"
	"github.com/site-analysis-service/internal/domain/repository"
	"github.com/site-analysis-service/internal/ingest"
	"github.com/site-analysis-service/internal/observability"
	"github.com/site-analysis-service/internal/pkg/errors"
	"github.com/site-analysis-service/internal/usecase/dto"
)

// PreviewLimit caps the number of annotated rows returned inline in the JSON
// response; the full result is available via the download endpoint.
const PreviewLimit = 50

// AnalysisUseCase runs the analysis pipeline over an uploaded CSV and keeps
// the annotated result available for download for a limited time.
type AnalysisUseCase struct {
	pipeline   *analysis.Pipeline
	resultRepo repository.ResultRepository
	metrics    *observability.Metrics
	logger     *zap.Logger
	resultTTL  time.Duration
}

func NewAnalysisUseCase(
	pipeline *analysis.Pipeline,
	resultRepo repository.ResultRepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
	resultTTL time.Duration,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		pipeline:   pipeline,
		resultRepo: resultRepo,
		metrics:    metrics,
		logger:     logger,
		resultTTL:  resultTTL,
	}
}

// Analyze parses the CSV, runs the pipeline and shapes the response. A result
// cache failure degrades to a response without a download URL; the analysis
// itself never fails because of the cache.
func (uc *AnalysisUseCase) Analyze(
	ctx context.Context,
	file io.Reader,
	opts domain.AnalysisOptions,
) (*dto.AnalyzeResponse, error) {
	start := time.Now()

	parsed, err := ingest.ReadSites(file)
	if err != nil {
		uc.metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	result, err := uc.pipeline.Run(parsed.Sites, opts)
	if err != nil {
		uc.metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	uc.metrics.RowsProcessed.Add(float64(len(result.Sites)))
	uc.metrics.RowsDropped.Add(float64(parsed.Dropped))

	resp := &dto.AnalyzeResponse{
		AnalysisID:   uuid.NewString(),
		RowsAnalyzed: len(result.Sites),
		RowsDropped:  parsed.Dropped,
		Summary:      dto.ConvertSummary(result.Summary),
		Preview:      make([]dto.SiteResultDTO, 0, min(len(result.Sites), PreviewLimit)),
		Messages:     parsed.Messages,
	}
	for i, s := range result.Sites {
		if i == PreviewLimit {
			break
		}
		resp.Preview = append(resp.Preview, dto.ConvertSiteResult(s))
	}

	if len(result.Sites) > 0 {
		if url, saveErr := uc.saveResult(ctx, resp.AnalysisID, result.Sites); saveErr != nil {
			uc.logger.Warn("Failed to cache analysis result, download disabled",
				zap.String("analysis_id", resp.AnalysisID),
				zap.Error(saveErr),
			)
		} else {
			resp.DownloadURL = url
		}
	}

	uc.metrics.AnalysesTotal.WithLabelValues("success").Inc()
	uc.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	uc.logger.Info("Analysis completed",
		zap.String("analysis_id", resp.AnalysisID),
		zap.Int("rows_analyzed", resp.RowsAnalyzed),
		zap.Int("rows_dropped", resp.RowsDropped),
		zap.Duration("took", time.Since(start)),
	)

	return resp, nil
}

func (uc *AnalysisUseCase) saveResult(ctx context.Context, id string, sites []domain.AnnotatedSite) (string, error) {
	data, err := ingest.WriteAnnotatedCSV(sites)
	if err != nil {
		return "", fmt.Errorf("serialize result: %w", err)
	}
	if err := uc.resultRepo.SaveResult(ctx, id, data, uc.resultTTL); err != nil {
		return "", err
	}
	return fmt.Sprintf("/api/v1/analyses/%s/download", id), nil
}

// Download returns the cached annotated CSV for a previous analysis.
func (uc *AnalysisUseCase) Download(ctx context.Context, id string) ([]byte, error) {
	data, err := uc.resultRepo.GetResult(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to read analysis result", zap.String("analysis_id", id), zap.Error(err))
		return nil, err
	}
	if data == nil {
		return nil, errors.ErrResultNotFound.WithDetails(map[string]interface{}{
			"analysis_id": id,
		})
	}
	return data, nil
}
