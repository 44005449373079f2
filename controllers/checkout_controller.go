package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CoptEgypt/StMark-Aghapy/models"
	"github.com/CoptEgypt/StMark-Aghapy/services"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
	Logger   *zap.Logger
}

func NewCheckoutController(checkout *services.CheckoutService, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{Checkout: checkout, Logger: logger}
}

// Handle serves every method on the checkout endpoint: OPTIONS preflight,
// POST checkout, 405 for everything else. CORS headers are applied by
// middleware on all paths before this runs.
func (cc *CheckoutController) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusOK)

	case http.MethodPost:
		cc.handleCheckout(c)

	default:
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	}
}

func (cc *CheckoutController) handleCheckout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cc.Logger.Warn("checkout body decode failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	result, err := cc.Checkout.Checkout(c.Request.Context(), req)
	if err != nil {
		cc.Logger.Error("checkout failed", zap.String("detail", err.Error()))
		status := http.StatusInternalServerError
		var svcErr *services.ServiceError
		if errors.As(err, &svcErr) && svcErr.StatusCode != 0 {
			status = svcErr.StatusCode
		}
		c.JSON(status, models.ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.CheckoutResponse{
		Success:   true,
		PaymentID: result.PaymentID,
		OrderID:   result.OrderID,
		Status:    result.Status,
	})
}
