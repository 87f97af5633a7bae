package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var statusMessages = map[string]string{
	"confirmed":        "Your order has been confirmed and is being prepared.",
	"processing":       "Your order is currently being processed by our team.",
	"ready_for_pickup": "Your order is ready for pickup!",
	"out_for_delivery": "Your order is out for delivery.",
	"completed":        "Your order has been completed. Thank you for choosing Freshora Laundry!",
	"cancelled":        "Your order has been cancelled. Contact us if this was unexpected.",
}

func statusMessage(status string) string {
	if m, ok := statusMessages[status]; ok {
		return m
	}
	return "Your order status has been updated."
}

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"date": func(t *time.Time) string {
		if t == nil {
			return "To be scheduled"
		}
		return t.Format("Mon, Jan 2, 2006")
	},
}

var confirmationTmpl = template.Must(template.New("confirmation").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Order Confirmation - Freshora Laundry</title>
</head>
<body style="margin:0;padding:0;font-family:'Segoe UI',Tahoma,Geneva,Verdana,sans-serif;background-color:#f8fafc;">
  <table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f8fafc;padding:20px;">
    <tr><td align="center">
      <table width="600" cellpadding="0" cellspacing="0" style="background-color:white;border-radius:12px;overflow:hidden;">
        <tr>
          <td style="background:linear-gradient(135deg,#667eea 0%,#764ba2 100%);padding:40px 30px;text-align:center;">
            <h1 style="color:white;margin:0;font-size:28px;">Order Confirmed!</h1>
            <p style="color:rgba(255,255,255,0.9);margin:10px 0 0 0;font-size:16px;">Your laundry order has been received</p>
          </td>
        </tr>
        <tr>
          <td style="padding:40px 30px;">
            <h2 style="color:#1f2937;margin:0 0 20px 0;font-size:22px;">Hello {{.CustomerName}}!</h2>
            <p style="color:#4b5563;line-height:1.6;font-size:16px;">
              Thank you for choosing Freshora Laundry! Your order has been confirmed and assigned tracking ID:
              <strong style="color:#667eea;">#{{.Reference}}</strong>
            </p>
            <table width="100%" cellpadding="8" cellspacing="0" style="background-color:#f9fafb;border-radius:8px;">
              <tr><td style="color:#6b7280;width:120px;">Order ID:</td><td style="color:#1f2937;font-weight:600;">#{{.Reference}}</td></tr>
              <tr><td style="color:#6b7280;">Total Amount:</td><td style="color:#1f2937;font-weight:600;">{{money .TotalAmount}}</td></tr>
              <tr><td style="color:#6b7280;">Status:</td><td style="color:#1f2937;font-weight:600;">{{.Status}}</td></tr>
              <tr><td style="color:#6b7280;">Pickup Date:</td><td style="color:#1f2937;font-weight:600;">{{date .PickupDate}}</td></tr>
              <tr><td style="color:#6b7280;">Delivery Date:</td><td style="color:#1f2937;font-weight:600;">{{date .DeliveryDate}}</td></tr>
            </table>
            {{if .Items}}
            <table width="100%" cellpadding="8" cellspacing="0" style="margin-top:25px;">
              <tr><th align="left">Item</th><th align="right">Qty</th><th align="right">Price</th><th align="right">Total</th></tr>
              {{range .Items}}
              <tr><td>{{.Name}}</td><td align="right">{{.Quantity}}</td><td align="right">{{money .Price}}</td><td align="right">{{money .TotalPrice}}</td></tr>
              {{end}}
            </table>
            {{end}}
            <p style="color:#1e40af;background-color:#eff6ff;border-radius:8px;padding:20px;margin:25px 0;font-size:14px;">
              Use your Order ID <strong>#{{.Reference}}</strong> to track your order status at any time.
            </p>
            <p style="color:#4b5563;line-height:1.6;font-size:14px;">
              We'll keep you updated via email as your order progresses through each stage.
            </p>
          </td>
        </tr>
        <tr>
          <td style="background-color:#f9fafb;padding:30px;text-align:center;border-top:1px solid #e5e7eb;">
            <p style="color:#6b7280;margin:0;font-size:14px;">
              &copy; Freshora Laundry. All rights reserved.<br>
              Questions? Contact us at support@freshora.com or (555) 123-4567
            </p>
          </td>
        </tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`))

var statusUpdateTmpl = template.Must(template.New("status").Funcs(funcs).Parse(`<h2>Order Status Update</h2>
<p>Hello {{.Order.CustomerName}},</p>
<p>Your order #{{.Order.Reference}} status has been updated to: <strong>{{.Label}}</strong></p>
<p>{{.Message}}</p>
<p>Track your order anytime using Order ID: <strong>#{{.Order.Reference}}</strong></p>
<p>Thank you for choosing Freshora Laundry!</p>
`))

// ConfirmationSubject returns the subject line of the order confirmation email.
func ConfirmationSubject(o OrderSummary) string {
	return fmt.Sprintf("Order Confirmation #%s - Freshora Laundry", o.Reference())
}

// StatusUpdateSubject returns the subject line of a status update email.
func StatusUpdateSubject(o OrderSummary, newStatus string) string {
	return fmt.Sprintf("Order Update #%s - %s", o.Reference(), StatusLabel(newStatus))
}

func renderConfirmation(o OrderSummary) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, o); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderStatusUpdate(o OrderSummary, newStatus string) (string, error) {
	var buf bytes.Buffer
	err := statusUpdateTmpl.Execute(&buf, struct {
		Order   OrderSummary
		Label   string
		Message string
	}{o, StatusLabel(newStatus), statusMessage(newStatus)})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
