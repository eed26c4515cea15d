package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Recipient resolves the email address and display name of a user.
type Recipient func(ctx context.Context, userID uint) (email, name string, err error)

type OrderEmailData struct {
	Name       string
	Heading    string
	OrderID    uint
	Status     string
	Items      []OrderEventItem
	TotalPrice string
}

var orderEmailTemplate = template.Must(template.New("order").Funcs(template.FuncMap{
	"lineTotal": func(item OrderEventItem) string {
		return item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2)
	},
}).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>{{.Heading}}</h2>
	<p>Hi {{.Name}},</p>
	<p>Order #{{.OrderID}} is now <strong>{{.Status}}</strong>.</p>
	<table style="border-collapse: collapse;">
		<tr><th>Product</th><th>Quantity</th><th>Price</th><th>Total</th></tr>
		{{range .Items}}<tr><td>{{.ProductName}}</td><td>{{.Quantity}}</td><td>{{.Price.StringFixed 2}}</td><td>{{lineTotal .}}</td></tr>
		{{end}}
	</table>
	<p><strong>Total: {{.TotalPrice}}</strong></p>
</body>
</html>`))

// MailNotifier emails the customer when an order is placed or cancelled.
type MailNotifier struct {
	cfg       SMTPConfig
	recipient Recipient
}

func NewMailNotifier(cfg SMTPConfig, recipient Recipient) *MailNotifier {
	return &MailNotifier{cfg: cfg, recipient: recipient}
}

func (m *MailNotifier) NotifyOrder(ctx context.Context, event OrderEvent) error {
	to, name, err := m.recipient(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("resolve recipient of order %d: %w", event.OrderID, err)
	}

	subject, body, err := RenderOrderEmail(event, name)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// RenderOrderEmail returns the subject and HTML body for an order event.
func RenderOrderEmail(event OrderEvent, name string) (string, string, error) {
	heading := "Thank you for your order"
	if event.Type == OrderCancelled {
		heading = "Your order was cancelled"
	}
	data := OrderEmailData{
		Name:       name,
		Heading:    heading,
		OrderID:    event.OrderID,
		Status:     event.Status,
		Items:      event.Items,
		TotalPrice: event.TotalPrice.StringFixed(2),
	}

	var body bytes.Buffer
	if err := orderEmailTemplate.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("template execution error: %w", err)
	}
	return fmt.Sprintf("%s (#%d)", heading, event.OrderID), body.String(), nil
}
