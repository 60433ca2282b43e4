package api

import (
	"io"
	"net/http"

	resdto "flight-booking/internal/handler/dto/response"
	"flight-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	maxWebhookBody  = 1 << 20
	signatureHeader = "Stripe-Signature"
)

type WebhookHandler struct {
	webhooks commands.WebhookCommands
}

func NewWebhookHandler(webhooks commands.WebhookCommands) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

// @Summary Payment gateway webhook
// @Description Authenticated by the Stripe-Signature header before the body is parsed
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "t=<unix>,v1=<hex hmac>"
// @Success 200 {object} resdto.WebhookResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /webhooks/payment-gateway [post]
func (h *WebhookHandler) PaymentGateway(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		abortBadRequest(c, err, "Unreadable body")
		return
	}

	if err := h.webhooks.Handle(c.Request.Context(), payload, c.GetHeader(signatureHeader)); err != nil {
		abortWithMapped(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.WebhookResponse{Received: true})
}
