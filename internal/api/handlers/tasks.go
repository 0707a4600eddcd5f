package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/StephCurry07/Appication-Tracker/internal/background"
	"github.com/StephCurry07/Appication-Tracker/internal/logging"
	"github.com/StephCurry07/Appication-Tracker/pkg/models"
)

// TaskStatusHandler returns the status and result of a background task.
func TaskStatusHandler(taskManager background.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.LogWithRequestID(requestID)

		processID := c.Param("processId")
		if processID == "" {
			return c.JSON(http.StatusBadRequest, models.AsyncErrorResponse{
				Error:     "missing_process_id",
				Message:   "Process ID parameter is required",
				Timestamp: time.Now(),
			})
		}

		result, err := taskManager.GetTaskResult(c.Request().Context(), processID)
		if err != nil {
			if err == background.ErrTaskNotFound {
				return c.JSON(http.StatusNotFound, models.AsyncErrorResponse{
					Error:     "task_not_found",
					Message:   "No task found for the given process ID",
					ProcessID: processID,
					Timestamp: time.Now(),
				})
			}
			logger.Error("Failed to retrieve task result", map[string]interface{}{
				"process_id": processID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.AsyncErrorResponse{
				Error:     "task_lookup_failed",
				Message:   err.Error(),
				ProcessID: processID,
				Timestamp: time.Now(),
			})
		}

		response := models.AsyncTaskStatusResponse{
			ProcessID:      result.ProcessID,
			Status:         models.AsyncStatus(result.Status),
			Data:           result.Data,
			Error:          result.Error,
			CreatedAt:      result.CreatedAt,
			CompletedAt:    result.CompletedAt,
			ProcessingTime: result.ProcessingTime,
		}

		return c.JSON(http.StatusOK, response)
	}
}
