package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/safety_monitor/internal/config"
	"github.com/shenikar/safety_monitor/internal/models"
	"github.com/shenikar/safety_monitor/internal/monitor"
	"github.com/shenikar/safety_monitor/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	safetyService service.SafetyService
	logger        *logrus.Logger
	validate      *validator.Validate
	cfg           *config.Config
}

func NewHandler(safetyService service.SafetyService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		safetyService: safetyService,
		logger:        logger,
		validate:      newValidator(),
		cfg:           cfg,
	}
}

// newValidator добавляет к стандартным правилам notfuture для меток времени клиента
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		ts, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !ts.After(time.Now().Add(monitor.MaxFixClockSkew))
	})
	return v
}

// writeError переводит ошибку движка в HTTP статус
func (h *Handler) writeError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, monitor.ErrInvalidFix), errors.Is(err, monitor.ErrInvalidReading):
		log.WithError(err).Warn("Rejected invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user is not monitored"})
	case errors.Is(err, monitor.ErrStateViolation), errors.Is(err, monitor.ErrTrackingStopped):
		log.WithError(err).Warn("Request conflicts with monitor state")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Unexpected service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Start tracking
// @Description Enable movement tracking and idle watchdog for a user. Idempotent. Requires API key.
// @Tags Tracking
// @Produce json
// @Security ApiKeyAuth
// @Param user path string true "User ID"
// @Success 200 {object} StatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /users/{user}/tracking/start [post]
func (h *Handler) startTracking(c *gin.Context) {
	userID := c.Param("user")
	log := h.logger.WithField("method", "startTracking").WithField("user_id", userID)

	status, err := h.safetyService.StartTracking(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToStatusResponse(status))
}

// @Summary Stop tracking
// @Description Disable tracking and cancel any pending confirmation window. Idempotent. Requires API key.
// @Tags Tracking
// @Produce json
// @Security ApiKeyAuth
// @Param user path string true "User ID"
// @Success 200 {object} StatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User is not monitored"
// @Router /users/{user}/tracking/stop [post]
func (h *Handler) stopTracking(c *gin.Context) {
	userID := c.Param("user")
	log := h.logger.WithField("method", "stopTracking").WithField("user_id", userID)

	status, err := h.safetyService.StopTracking(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToStatusResponse(status))
}

// @Summary Submit a position fix
// @Description Classify a position fix as movement or stillness. Requires API key.
// @Tags Tracking
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user path string true "User ID"
// @Param fix body PositionFixRequest true "Position fix"
// @Success 200 {object} MovementResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Tracking is not active"
// @Router /users/{user}/fixes [post]
func (h *Handler) observePosition(c *gin.Context) {
	userID := c.Param("user")
	log := h.logger.WithField("method", "observePosition").WithField("user_id", userID)

	var input PositionFixRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	signal, err := h.safetyService.ObservePosition(c.Request.Context(), userID, DTOToPositionFix(input))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, MovementResponse{Moved: signal.Moved, IdleSeconds: signal.IdleSeconds})
}

// @Summary Submit a distress reading
// @Description Feed a voice distress reading. A confident reading dispatches an SOS immediately. Requires API key.
// @Tags Distress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user path string true "User ID"
// @Param reading body DistressRequest true "Distress reading"
// @Success 200 {object} DistressResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} DistressResponse "SOS dispatch failed"
// @Router /users/{user}/distress [post]
func (h *Handler) submitDistress(c *gin.Context) {
	userID := c.Param("user")
	log := h.logger.WithField("method", "submitDistress").WithField("user_id", userID)

	var input DistressRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reading, err := DTOToDistressReading(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.safetyService.SubmitDistress(c.Request.Context(), userID, reading)
	if err != nil {
		if errors.Is(err, monitor.ErrDispatchFailed) {
			log.WithError(err).Error("Voice distress SOS dispatch failed")
			c.JSON(http.StatusBadGateway, ModelToDistressResponse(result))
			return
		}
		if result.Action == models.DistressActionAdvisory {
			// Предупреждение записано, но не доставлено в приложение
			log.WithError(err).Warn("Advisory was not delivered")
			c.JSON(http.StatusOK, ModelToDistressResponse(result))
			return
		}
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToDistressResponse(result))
}

// @Summary Confirm the user is fine
// @Description Cancel a pending idle escalation within the confirmation window. Requires API key.
// @Tags Escalation
// @Produce json
// @Security ApiKeyAuth
// @Param user path string true "User ID"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "No session is awaiting confirmation"
// @Router /users/{user}/confirm [post]
func (h *Handler) confirm(c *gin.Context) {
	userID := c.Param("user")
	log := h.logger.WithField("method", "confirm").WithField("user_id", userID)

	session, err := h.safetyService.Confirm(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToSessionResponse(session))
}

// @Summary Trigger a manual SOS
// @Description Dispatch an SOS with the last known position. Requires API key.
// @Tags Escalation
// @Produce json
// @Security ApiKeyAuth
// @Param user path string true "User ID"
// @Success 200 {object} SOSOutcomeResponse
// @Success 202 {object} SOSOutcomeResponse "SOS already in flight"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} SOSOutcomeResponse "SOS dispatch failed"
// @Router /users/{user}/sos [post]
func (h *Handler) triggerSOS(c *gin.Context) {
	userID := c.Param("user")
	log := h.logger.WithField("method", "triggerSOS").WithField("user_id", userID)

	outcome, err := h.safetyService.TriggerSOS(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, monitor.ErrDispatchFailed) {
			c.JSON(http.StatusBadGateway, ModelToSOSOutcomeResponse(outcome))
			return
		}
		h.writeError(c, log, err)
		return
	}

	if outcome.Status == models.SOSStatusAlreadyInFlight {
		c.JSON(http.StatusAccepted, ModelToSOSOutcomeResponse(outcome))
		return
	}
	c.JSON(http.StatusOK, ModelToSOSOutcomeResponse(outcome))
}

// @Summary Get monitor status
// @Description Get tracking, idle and escalation state for a user. Requires API key.
// @Tags Tracking
// @Produce json
// @Security ApiKeyAuth
// @Param user path string true "User ID"
// @Success 200 {object} StatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User is not monitored"
// @Router /users/{user}/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	userID := c.Param("user")
	log := h.logger.WithField("method", "getStatus").WithField("user_id", userID)

	status, err := h.safetyService.Status(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToStatusResponse(status))
}

// @Summary List recent alerts
// @Description Get the most recent alerts (SOS, VOICE, ADVISORY), newest first. Requires API key.
// @Tags Alerts
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Number of alerts" default(50)
// @Success 200 {array} AlertResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listAlerts")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultAlertsLimit)))

	alerts, err := h.safetyService.ListAlerts(c.Request.Context(), limit)
	if err != nil {
		log.WithError(err).Error("Failed to list alerts from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
