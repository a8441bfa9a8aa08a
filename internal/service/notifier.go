package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/chic-classics/checkout-service/internal/config"
	"github.com/chic-classics/checkout-service/internal/mail"
	"github.com/chic-classics/checkout-service/internal/models"
)

// Notifier composes and delivers the two order emails: a notification to
// the shop owner's mailbox and a confirmation to the customer. Sends run
// detached from the request; failures reach the log, never the caller, and
// the process gives no delivery guarantee.
type Notifier struct {
	mailer mail.Mailer
	shop   config.ShopConfig
	logger *zap.Logger
}

// NewNotifier creates a new order email notifier.
func NewNotifier(mailer mail.Mailer, shop config.ShopConfig, logger *zap.Logger) *Notifier {
	return &Notifier{
		mailer: mailer,
		shop:   shop,
		logger: logger,
	}
}

// DispatchOrderEmails sends both order emails in the background and
// returns immediately.
func (n *Notifier) DispatchOrderEmails(order *models.Order, origin string) {
	go n.send("owner notification", n.OwnerMessage(order, origin))
	go n.send("customer confirmation", n.CustomerMessage(order))
}

func (n *Notifier) send(kind string, msg *mail.Message) {
	if err := n.mailer.Send(context.Background(), msg); err != nil {
		n.logger.Error("Failed to send "+kind,
			zap.String("to", msg.To),
			zap.Error(err),
		)
		return
	}
	n.logger.Debug("Sent "+kind, zap.String("to", msg.To))
}

// OwnerMessage builds the new-order notification for the shop owner:
// customer block, one line per item with its line total, grand total, and
// a link to the admin dashboard on the storefront origin.
func (n *Notifier) OwnerMessage(order *models.Order, origin string) *mail.Message {
	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "- %s × %d = $%s\n",
			item.Label(), item.Quantity, item.LineTotal().StringFixed(2))
	}

	body := fmt.Sprintf(`NEW ORDER RECEIVED!

Customer: %s
Email: %s
Phone: %s
Address: %s

Items:
%s
Total: $%s

Payment: Processing via Stripe
View in Dashboard: %s/admin/orders`,
		order.CustomerInfo.Name,
		order.CustomerInfo.Email,
		order.CustomerInfo.Phone,
		order.CustomerInfo.Address,
		items.String(),
		order.Total.StringFixed(2),
		origin,
	)

	return &mail.Message{
		To:      n.shop.OwnerEmail,
		Subject: fmt.Sprintf("New Order #%s - %s", order.ID, n.shop.Name),
		Body:    body,
	}
}

// CustomerMessage builds the order confirmation for the customer's
// supplied address, referencing the order identifier and total.
func (n *Notifier) CustomerMessage(order *models.Order) *mail.Message {
	body := fmt.Sprintf(`Hi %s,

Thank you for your order! We’ve received your payment and are preparing your items.

Order ID: #%s
Total: $%s

We’ll notify you when it ships.

Questions? Reply to this email.

— %s`,
		order.CustomerInfo.Name,
		order.ID,
		order.Total.StringFixed(2),
		n.shop.Name,
	)

	return &mail.Message{
		To:      order.CustomerInfo.Email,
		Subject: "Order Confirmed - " + n.shop.Name,
		Body:    body,
	}
}
