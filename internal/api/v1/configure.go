package v1

import (
	"net/http"

	"github.com/flexprice/paystack-gateway/internal/api/dto"
	ierr "github.com/flexprice/paystack-gateway/internal/errors"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/service"
	"github.com/flexprice/paystack-gateway/internal/types"
	"github.com/gin-gonic/gin"
)

const notificationSaved = "The settings have been updated successfully."

// ConfigureHandler serves the admin configuration and install surface
type ConfigureHandler struct {
	settingsSvc service.SettingsService
	pluginSvc   service.PluginService
	log         *logger.Logger
}

func NewConfigureHandler(
	settingsSvc service.SettingsService,
	pluginSvc service.PluginService,
	log *logger.Logger,
) *ConfigureHandler {
	return &ConfigureHandler{
		settingsSvc: settingsSvc,
		pluginSvc:   pluginSvc,
		log:         log,
	}
}

func (h *ConfigureHandler) GetConfiguration(c *gin.Context) {
	ctx := c.Request.Context()

	resp, err := h.settingsSvc.GetConfiguration(ctx, types.GetStoreScope(ctx))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ConfigureHandler) SaveConfiguration(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	scope := types.GetStoreScope(ctx)
	if err := h.settingsSvc.SaveConfiguration(ctx, scope, &req); err != nil {
		c.Error(err)
		return
	}

	model, err := h.settingsSvc.GetConfiguration(ctx, scope)
	if err != nil {
		c.Error(err)
		return
	}

	message, err := h.pluginSvc.LocalizedString(ctx, service.ResourceSettingsSaved, notificationSaved)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ConfigurationResponse{
		Model: model,
		Notification: &dto.Notification{
			ID:      types.GenerateUUIDWithPrefix(types.UUID_PREFIX_NOTIFICATION),
			Type:    "success",
			Message: message,
		},
	})
}

func (h *ConfigureHandler) Install(c *gin.Context) {
	resp, err := h.pluginSvc.Provision(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ConfigureHandler) Uninstall(c *gin.Context) {
	resp, err := h.pluginSvc.Deprovision(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
