package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"board-api/board"
	"board-api/domain"
)

const mutationMaxSize = 64 * 1024 // 64 KiB

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, engine Engine, deduper Deduper, logger *log.Logger) {
	e.POST("/api/tasks", postTask(engine, deduper, logger))
	e.DELETE("/api/tasks/:column/:id", deleteTask(engine, logger))
	e.POST("/api/moves", postMove(engine, logger))
	e.PUT("/api/filters", putFilters(engine))
	e.DELETE("/api/filters", clearFilters(engine))
	e.GET("/api/columns/:column", getColumn(engine))
	e.GET("/api/board", getBoard(engine))
	e.GET("/healthz", healthz())
}

type validationResponse struct {
	FieldErrors domain.FieldErrors `json:"fieldErrors"`
}

type addTaskResponse struct {
	Task      *domain.Task `json:"task,omitempty"`
	Duplicate bool         `json:"duplicate,omitempty"`
}

// moveRequest mirrors the drag-and-drop collaborator payload. An empty
// destination means the drag was cancelled.
type moveRequest struct {
	Source      string `json:"source"`
	SourceIndex int    `json:"sourceIndex"`
	Destination string `json:"destination"`
	DestIndex   int    `json:"destIndex"`
}

type filtersRequest struct {
	Priority string `json:"priority"`
	DueDate  string `json:"dueDate"`
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func decodeBody(c echo.Context, v any) error {
	lr := io.LimitReader(c.Request().Body, mutationMaxSize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func postTask(engine Engine, deduper Deduper, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newMutationMetrics(ctx, logger, "/api/tasks")
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		decodeStart := time.Now()
		var draft domain.Draft
		if decodeErr := decodeBody(c, &draft); decodeErr != nil {
			metrics.SetErrorStage("decode")
			err = c.String(http.StatusBadRequest, "invalid body")
			return err
		}
		metrics.ObserveDecode(time.Since(decodeStart))

		if fieldErrs := draft.Validate(time.Now()); len(fieldErrs) > 0 {
			metrics.SetErrorStage("validate")
			err = c.JSON(http.StatusUnprocessableEntity, validationResponse{FieldErrors: fieldErrs})
			return err
		}

		key := c.Request().Header.Get("Idempotency-Key")
		if key == "" {
			key = uuid.NewString()
		}
		if deduper != nil {
			added, dedupeErr := deduper.Add(ctx, key)
			if dedupeErr != nil {
				metrics.SetErrorStage("dedupe")
				err = c.String(http.StatusInternalServerError, dedupeErr.Error())
				return err
			}
			if !added {
				err = c.JSON(http.StatusOK, addTaskResponse{Duplicate: true})
				return err
			}
		}

		task := domain.NewTask(draft)
		mutateStart := time.Now()
		_, addErr := engine.AddTask(ctx, task, task.Stage.ColumnID())
		metrics.ObserveMutate(time.Since(mutateStart))
		if addErr != nil {
			if deduper != nil {
				_ = deduper.Remove(ctx, key)
			}
			var invalid board.InvalidColumnError
			if errors.As(addErr, &invalid) {
				metrics.SetErrorStage("invalid_column")
				err = c.String(http.StatusBadRequest, addErr.Error())
				return err
			}
			metrics.SetErrorStage("storage")
			c.Logger().Error(addErr)
			err = c.String(http.StatusInternalServerError, addErr.Error())
			return err
		}
		err = c.JSON(http.StatusCreated, addTaskResponse{Task: &task})
		return err
	}
}

func deleteTask(engine Engine, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newMutationMetrics(ctx, logger, "/api/tasks/:column/:id")
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		taskID, parseErr := strconv.ParseInt(c.Param("id"), 10, 64)
		if parseErr != nil {
			metrics.SetErrorStage("invalid_task_id")
			err = c.String(http.StatusBadRequest, "invalid task id")
			return err
		}

		mutateStart := time.Now()
		_, delErr := engine.DeleteTask(ctx, c.Param("column"), taskID)
		metrics.ObserveMutate(time.Since(mutateStart))
		if delErr != nil {
			var invalid board.InvalidColumnError
			if errors.As(delErr, &invalid) {
				metrics.SetErrorStage("invalid_column")
				err = c.String(http.StatusBadRequest, delErr.Error())
				return err
			}
			metrics.SetErrorStage("storage")
			c.Logger().Error(delErr)
			err = c.String(http.StatusInternalServerError, delErr.Error())
			return err
		}
		err = c.NoContent(http.StatusNoContent)
		return err
	}
}

func postMove(engine Engine, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newMutationMetrics(ctx, logger, "/api/moves")
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		decodeStart := time.Now()
		var req moveRequest
		if decodeErr := decodeBody(c, &req); decodeErr != nil {
			metrics.SetErrorStage("decode")
			err = c.String(http.StatusBadRequest, "invalid body")
			return err
		}
		metrics.ObserveDecode(time.Since(decodeStart))

		// A cancelled drag has no destination; skip the whole call.
		if req.Destination == "" {
			err = c.NoContent(http.StatusNoContent)
			return err
		}

		mutateStart := time.Now()
		snapshot, moveErr := engine.MoveTask(ctx, req.Source, req.SourceIndex, req.Destination, req.DestIndex)
		metrics.ObserveMutate(time.Since(mutateStart))
		if moveErr != nil {
			var invalid board.InvalidColumnError
			var outOfRange board.IndexOutOfRangeError
			switch {
			case errors.As(moveErr, &invalid):
				metrics.SetErrorStage("invalid_column")
				err = c.String(http.StatusBadRequest, moveErr.Error())
			case errors.As(moveErr, &outOfRange):
				// Stale drag indices race against board state.
				metrics.SetErrorStage("index_out_of_range")
				err = c.String(http.StatusConflict, moveErr.Error())
			default:
				metrics.SetErrorStage("storage")
				c.Logger().Error(moveErr)
				err = c.String(http.StatusInternalServerError, moveErr.Error())
			}
			return err
		}
		err = c.JSON(http.StatusOK, snapshot)
		return err
	}
}

func putFilters(engine Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req filtersRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		priority := domain.PriorityFilter(req.Priority)
		if req.Priority == "" {
			priority = domain.PriorityAll
		}
		if !priority.Valid() {
			return c.String(http.StatusBadRequest, "invalid priority filter")
		}
		dueDate := domain.DueDateFilter(req.DueDate)
		if req.DueDate == "" {
			dueDate = domain.DueDateAll
		}
		if !dueDate.Valid() {
			return c.String(http.StatusBadRequest, "invalid due date filter")
		}
		engine.SetPriorityFilter(priority)
		engine.SetDueDateFilter(dueDate)
		return c.NoContent(http.StatusNoContent)
	}
}

func clearFilters(engine Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		engine.ClearFilters()
		return c.NoContent(http.StatusNoContent)
	}
}

func getColumn(engine Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		view, err := engine.ColumnView(c.Param("column"))
		if err != nil {
			var invalid board.InvalidColumnError
			if errors.As(err, &invalid) {
				return c.String(http.StatusBadRequest, err.Error())
			}
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, view)
	}
}

func getBoard(engine Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, engine.Snapshot())
	}
}
