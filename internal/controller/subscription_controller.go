package controller

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	stripesub "github.com/stripe/stripe-go/v74/subscription"
	"github.com/stripe/stripe-go/v74/webhook"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ridepool_backend/internal/model"
	"ridepool_backend/pkg/config"
	"ridepool_backend/pkg/database"
	plan "ridepool_backend/pkg/subscription"
	"ridepool_backend/pkg/utils/jwt"
)

type CheckoutInput struct {
	PlanType string  `json:"plan_type" validate:"required"`
	Price    float64 `json:"price"`
}

var stripeCfg config.StripeConfig

func InitSubscriptionController(cfg config.StripeConfig) {
	stripeCfg = cfg
	stripe.Key = cfg.SecretKey
}

func ListPlans(c *fiber.Ctx) error {
	return c.JSON(plan.Plans)
}

// CreateCheckoutSession starts a hosted checkout for the chosen plan and
// returns the redirect URL.
func CreateCheckoutSession(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(CheckoutInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	planType := plan.PlanType(input.PlanType)
	if !plan.ValidPlan(planType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan type",
		})
	}

	details := plan.Plans[planType]
	price := input.Price
	if price <= 0 {
		price = details.Price
	}

	interval := "month"
	intervalCount := int64(details.Months)
	if planType == plan.YearlyPlan {
		interval = "year"
		intervalCount = 1
	}

	metadata := map[string]string{
		"user_id":   strconv.FormatUint(uint64(claims.UserID), 10),
		"plan_type": string(planType),
		"price":     strconv.FormatFloat(price, 'f', 2, 64),
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		ClientReferenceID: stripe.String(strconv.FormatUint(uint64(claims.UserID), 10)),
		CustomerEmail:     stripe.String(claims.Email),
		SuccessURL:        stripe.String(stripeCfg.SuccessURL),
		CancelURL:         stripe.String(stripeCfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(int64(price * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("RidePool " + details.Name + " Plan"),
					},
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval:      stripe.String(interval),
						IntervalCount: stripe.Int64(intervalCount),
					},
				},
			},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	checkoutSession, err := session.New(params)
	if err != nil {
		log.Printf("Could not create checkout session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create checkout session",
		})
	}

	return c.JSON(fiber.Map{
		"url": checkoutSession.URL,
	})
}

func GetMySubscription(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var sub model.Subscription
	if err := database.GetDB().Where("user_id = ?", claims.UserID).First(&sub).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No subscription found",
		})
	}

	return c.JSON(sub)
}

func CancelSubscription(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var sub model.Subscription
	if err := database.GetDB().
		Where("user_id = ? AND status = ?", claims.UserID, model.SubscriptionStatusActive).
		First(&sub).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No active subscription found",
		})
	}

	if sub.StripeSubID != "" {
		if _, err := stripesub.Cancel(sub.StripeSubID, nil); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not cancel subscription with the payment provider",
			})
		}
	}

	if err := applySubscriptionEvent(subscriptionEvent{
		UserID:     sub.UserID,
		Status:     model.SubscriptionStatusExpired,
		OccurredAt: time.Now(),
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update subscription status",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Subscription cancelled successfully",
	})
}

// HandleSubscriptionSuccess is where the hosted checkout redirects after a
// completed payment. The subscription itself is written by the webhook.
func HandleSubscriptionSuccess(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Payment received. Your subscription will activate shortly.",
	})
}

func HandleSubscriptionCancel(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Checkout cancelled. No charge was made.",
	})
}

// subscriptionEvent is the normalized form every webhook branch reduces to
// before touching the database.
type subscriptionEvent struct {
	UserID           uint
	PlanType         plan.PlanType
	Status           model.SubscriptionStatus
	StartsAt         time.Time
	EndsAt           time.Time
	Price            float64
	StripeCustomerID string
	StripeSubID      string
	OccurredAt       time.Time
}

// applySubscriptionEvent writes one webhook event to the subscription row
// and the owner's user type inside a single transaction. Activations run as
// an upsert keyed on user_id; a last_event_at guard makes stale or replayed
// deliveries no-ops.
func applySubscriptionEvent(evt subscriptionEvent) error {
	return database.GetDB().Transaction(func(tx *gorm.DB) error {
		var applied int64

		if evt.Status == model.SubscriptionStatusActive {
			sub := model.Subscription{
				UserID:           evt.UserID,
				PlanType:         string(evt.PlanType),
				Status:           evt.Status,
				StartsAt:         evt.StartsAt,
				EndsAt:           evt.EndsAt,
				Price:            evt.Price,
				StripeCustomerID: evt.StripeCustomerID,
				StripeSubID:      evt.StripeSubID,
				LastEventAt:      evt.OccurredAt,
			}

			result := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"plan_type", "status", "starts_at", "ends_at", "price",
					"stripe_customer_id", "stripe_sub_id", "last_event_at", "updated_at",
				}),
				Where: clause.Where{Exprs: []clause.Expression{
					clause.Lt{
						Column: clause.Column{Table: "subscriptions", Name: "last_event_at"},
						Value:  evt.OccurredAt,
					},
				}},
			}).Create(&sub)
			if result.Error != nil {
				return result.Error
			}
			applied = result.RowsAffected
		} else {
			result := tx.Model(&model.Subscription{}).
				Where("user_id = ? AND last_event_at < ?", evt.UserID, evt.OccurredAt).
				Updates(map[string]interface{}{
					"status":        model.SubscriptionStatusExpired,
					"last_event_at": evt.OccurredAt,
				})
			if result.Error != nil {
				return result.Error
			}
			applied = result.RowsAffected
		}

		// Stale event: the row already reflects something newer.
		if applied == 0 {
			return nil
		}

		userType := model.UserTypeCommon
		if evt.Status == model.SubscriptionStatusActive {
			userType = model.UserTypeCarOwner
		}

		return tx.Model(&model.User{}).
			Where("id = ?", evt.UserID).
			Update("user_type", userType).Error
	})
}

func userIDFromMetadata(metadata map[string]string) (uint, bool) {
	raw, ok := metadata["user_id"]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// HandleStripeWebhook verifies and applies payment-processor events. Any
// database failure returns 500 so the processor retries the delivery.
func HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signatureHeader := c.Get("Stripe-Signature")

	event, err := webhook.ConstructEvent(payload, signatureHeader, stripeCfg.WebhookSecret)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	log.Printf("Processing Stripe webhook event: %s", event.Type)
	occurredAt := time.Unix(event.Created, 0)

	switch event.Type {
	case "checkout.session.completed":
		var checkoutSession stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &checkoutSession); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Could not parse checkout session",
			})
		}
		if checkoutSession.Mode != stripe.CheckoutSessionModeSubscription {
			break
		}

		userID, ok := userIDFromMetadata(checkoutSession.Metadata)
		if !ok {
			if id, err := strconv.ParseUint(checkoutSession.ClientReferenceID, 10, 32); err == nil {
				userID, ok = uint(id), true
			}
		}
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Checkout session has no user reference",
			})
		}

		planType := plan.PlanType(checkoutSession.Metadata["plan_type"])
		if !plan.ValidPlan(planType) {
			planType = plan.MonthlyPlan
		}

		price, err := strconv.ParseFloat(checkoutSession.Metadata["price"], 64)
		if err != nil {
			price = float64(checkoutSession.AmountTotal) / 100
		}

		evt := subscriptionEvent{
			UserID:     userID,
			PlanType:   planType,
			Status:     model.SubscriptionStatusActive,
			StartsAt:   occurredAt,
			EndsAt:     plan.PeriodEnd(planType, occurredAt),
			Price:      price,
			OccurredAt: occurredAt,
		}
		if checkoutSession.Customer != nil {
			evt.StripeCustomerID = checkoutSession.Customer.ID
		}
		if checkoutSession.Subscription != nil {
			evt.StripeSubID = checkoutSession.Subscription.ID
		}

		if err := applySubscriptionEvent(evt); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not save subscription",
			})
		}

	case "customer.subscription.updated", "customer.subscription.deleted":
		var stripeSubscription stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &stripeSubscription); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Could not parse subscription",
			})
		}

		userID, ok := userIDFromMetadata(stripeSubscription.Metadata)
		if !ok {
			userID, ok = lookupUserBySubID(stripeSubscription.ID)
		}
		if !ok {
			log.Printf("No local subscription for %s, ignoring", stripeSubscription.ID)
			break
		}

		if err := applyProcessorSubscription(userID, &stripeSubscription, occurredAt); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update subscription",
			})
		}

	case "invoice.payment_succeeded":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Could not parse invoice",
			})
		}
		if invoice.Subscription == nil {
			break
		}

		// Refresh the period from the source of truth before upserting.
		stripeSubscription, err := stripesub.Get(invoice.Subscription.ID, nil)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not fetch subscription",
			})
		}

		userID, ok := userIDFromMetadata(stripeSubscription.Metadata)
		if !ok {
			userID, ok = lookupUserBySubID(stripeSubscription.ID)
		}
		if !ok {
			log.Printf("No local subscription for %s, ignoring", stripeSubscription.ID)
			break
		}

		if err := applyProcessorSubscription(userID, stripeSubscription, occurredAt); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update subscription",
			})
		}

	case "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Could not parse invoice",
			})
		}
		if invoice.Subscription == nil {
			break
		}

		userID, ok := lookupUserBySubID(invoice.Subscription.ID)
		if !ok {
			log.Printf("No local subscription for %s, ignoring", invoice.Subscription.ID)
			break
		}

		if err := applySubscriptionEvent(subscriptionEvent{
			UserID:     userID,
			Status:     model.SubscriptionStatusExpired,
			OccurredAt: occurredAt,
		}); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update subscription",
			})
		}
	}

	return c.JSON(fiber.Map{
		"received": true,
		"type":     event.Type,
	})
}

// applyProcessorSubscription maps a processor-side subscription object onto
// the local record: active/trialing renews it, anything else expires it.
func applyProcessorSubscription(userID uint, sub *stripe.Subscription, occurredAt time.Time) error {
	evt := subscriptionEvent{
		UserID:      userID,
		Status:      model.SubscriptionStatusExpired,
		StripeSubID: sub.ID,
		OccurredAt:  occurredAt,
	}

	if sub.Status == stripe.SubscriptionStatusActive || sub.Status == stripe.SubscriptionStatusTrialing {
		planType := plan.PlanType(sub.Metadata["plan_type"])
		if !plan.ValidPlan(planType) {
			planType = plan.MonthlyPlan
		}

		evt.Status = model.SubscriptionStatusActive
		evt.PlanType = planType
		evt.StartsAt = time.Unix(sub.CurrentPeriodStart, 0)
		evt.EndsAt = time.Unix(sub.CurrentPeriodEnd, 0)
		if price, err := strconv.ParseFloat(sub.Metadata["price"], 64); err == nil {
			evt.Price = price
		}
		if sub.Customer != nil {
			evt.StripeCustomerID = sub.Customer.ID
		}
	}

	return applySubscriptionEvent(evt)
}

func lookupUserBySubID(stripeSubID string) (uint, bool) {
	var sub model.Subscription
	if err := database.GetDB().Where("stripe_sub_id = ?", stripeSubID).First(&sub).Error; err != nil {
		return 0, false
	}
	return sub.UserID, true
}
