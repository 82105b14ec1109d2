package api

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// PaymentEvents is the slice of the booking service the webhook drives.
type PaymentEvents interface {
	ConfirmPaymentBySession(ctx context.Context, sessionID, paymentIntentID string) error
	MarkPaymentFailedBySession(ctx context.Context, sessionID string) error
}

// SessionResolver maps a payment intent back to its checkout session for
// events that only carry the intent.
type SessionResolver interface {
	SessionIDByPaymentIntentID(paymentIntentID string) (string, error)
}

type StripeWebhookHandler struct {
	webhookSecret string
	bookings      PaymentEvents
	sessions      SessionResolver
}

func NewStripeWebhookHandler(webhookSecret string, bookings PaymentEvents, sessions SessionResolver) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		webhookSecret: webhookSecret,
		bookings:      bookings,
		sessions:      sessions,
	}
}

func (h *StripeWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading webhook body: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sigHeader, h.webhookSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil || sess.ID == "" {
			log.Printf("Error parsing checkout.session: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		paymentIntentID := ""
		if sess.PaymentIntent != nil {
			paymentIntentID = sess.PaymentIntent.ID
		}
		if err := h.bookings.ConfirmPaymentBySession(r.Context(), sess.ID, paymentIntentID); err != nil {
			log.Printf("Error confirming payment for session %s: %v", sess.ID, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			log.Printf("Error parsing charge: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if charge.PaymentIntent != nil && charge.PaymentIntent.ID != "" {
			sessionID, err := h.sessions.SessionIDByPaymentIntentID(charge.PaymentIntent.ID)
			if err != nil {
				log.Printf("No session found for PaymentIntent %s: %v", charge.PaymentIntent.ID, err)
				break
			}
			if err := h.bookings.MarkPaymentFailedBySession(r.Context(), sessionID); err != nil {
				log.Printf("Error recording refund for session %s: %v", sessionID, err)
			}
		}

	default:
		log.Printf("Unhandled event type: %s", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}
