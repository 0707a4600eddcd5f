// Package handlers holds the echo handlers for the extraction API.
package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/StephCurry07/Appication-Tracker/internal/background"
	"github.com/StephCurry07/Appication-Tracker/internal/config"
	"github.com/StephCurry07/Appication-Tracker/internal/extractor/workers"
	"github.com/StephCurry07/Appication-Tracker/internal/logging"
	"github.com/StephCurry07/Appication-Tracker/pkg/models"
	"github.com/StephCurry07/Appication-Tracker/pkg/utils"
)

var validate = validator.New()

// ExtractHandler runs a synchronous extraction through the worker pool.
func ExtractHandler(cfg *config.Config, poolManager *workers.PoolManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := requestIDFrom(c)
		logger := logging.LogWithRequestID(requestID)

		req, errResp := bindExtractRequest(c, requestID)
		if errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}

		logger.Info("Extract request received", map[string]interface{}{
			"url":      req.URL,
			"strategy": req.NormalizedStrategy(),
		})

		ctx := c.Request().Context()
		result, err := poolManager.SubmitJob(ctx, req.URL, req.NormalizedStrategy(), req.ParseJob)
		if err != nil {
			logger.Error("Failed to submit extraction job", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:     "job_submission_failed",
				Details:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if result.Error != nil {
			ee := utils.AsExtractionError(result.Error)
			logger.Error("Extraction failed", map[string]interface{}{
				"error":  ee.Error(),
				"method": ee.Method,
			})
			return c.JSON(ee.Code, models.ErrorResponse{
				Error:     ee.Message,
				Details:   ee.Detail,
				Method:    ee.Method,
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		extraction := result.Result
		response := models.ExtractResponse{
			Success:        true,
			Content:        extraction.Content,
			URL:            req.URL,
			ContentLength:  extraction.ContentLength,
			Method:         extraction.Method,
			Hostname:       extraction.Hostname,
			Timestamp:      extraction.Timestamp,
			Job:            result.Job,
			ProcessingTime: time.Since(startTime),
			RequestID:      requestID,
		}

		logger.Info("Extract request completed", map[string]interface{}{
			"method":          extraction.Method,
			"content_length":  extraction.ContentLength,
			"processing_time": time.Since(startTime).String(),
		})

		return c.JSON(http.StatusOK, response)
	}
}

// AsyncExtractHandler accepts an extraction for background processing and
// returns a process ID immediately.
func AsyncExtractHandler(cfg *config.Config, poolManager *workers.PoolManager, taskManager background.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.LogWithRequestID(requestID)

		req, errResp := bindExtractRequest(c, requestID)
		if errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}

		processID := utils.GenerateRequestID()
		logger.Info("Async extract request received", map[string]interface{}{
			"url":        req.URL,
			"process_id": processID,
		})

		if err := taskManager.SubmitExtractTask(c.Request().Context(), processID, *req, poolManager); err != nil {
			logger.Error("Failed to submit background task", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusServiceUnavailable, models.AsyncErrorResponse{
				Error:     "task_submission_failed",
				Message:   err.Error(),
				ProcessID: processID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusAccepted, models.CreateAsyncExtractResponse(processID))
	}
}

func bindExtractRequest(c echo.Context, requestID string) (*models.ExtractRequest, *models.ErrorResponse) {
	var req models.ExtractRequest
	if err := c.Bind(&req); err != nil {
		return nil, &models.ErrorResponse{
			Error:     "invalid_request",
			Details:   "Invalid request format",
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}

	if err := validate.Struct(&req); err != nil {
		return nil, &models.ErrorResponse{
			Error:     "invalid_url",
			Details:   err.Error(),
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}

	return &req, nil
}

func requestIDFrom(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}
