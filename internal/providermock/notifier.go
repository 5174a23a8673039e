package providermock

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/amirhossein-jamali/payment-processor/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-processor/internal/domain/signature"
	"github.com/google/uuid"
)

// Notifier delivers signed settlement notifications to the merchant
// callback URL. Delivery is best-effort: every failure is logged and
// swallowed, the merchant never sees a retry.
type Notifier struct {
	client *http.Client
	signer *signature.Engine
	logger coreport.Logger
}

// NewNotifier creates a notifier with the given delivery timeout
func NewNotifier(signer *signature.Engine, timeout time.Duration, logger coreport.Logger) *Notifier {
	return &Notifier{
		client: &http.Client{Timeout: timeout},
		signer: signer,
		logger: logger,
	}
}

// Deliver signs the notification payload and posts it to the merchant
func (n *Notifier) Deliver(notificationURL string, payload entity.NotificationPayload) {
	envelopeUUID := uuid.NewString()

	sig, err := n.signer.Sign(entity.MethodNotification, envelopeUUID, payload)
	if err != nil {
		n.logger.Error("Cannot sign notification", map[string]any{
			"payment_id": payload.PaymentID,
			"error":      err.Error(),
		})
		return
	}

	envelope := entity.Envelope{
		Version: entity.ProtocolVersion,
		Result: &entity.Result{
			UUID:      envelopeUUID,
			Method:    entity.MethodNotification,
			Signature: sig,
			Data:      payload,
		},
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		n.logger.Error("Cannot marshal notification envelope", map[string]any{
			"payment_id": payload.PaymentID,
			"error":      err.Error(),
		})
		return
	}

	resp, err := n.client.Post(notificationURL, "application/json", bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("Notification delivery failed", map[string]any{
			"payment_id": payload.PaymentID,
			"url":        notificationURL,
			"error":      err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	n.logger.Info("Notification delivered", map[string]any{
		"payment_id": payload.PaymentID,
		"status":     payload.Status,
		"http_code":  resp.StatusCode,
	})
}
