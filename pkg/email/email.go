package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// LowStockItem is one product line in a low-stock alert email
type LowStockItem struct {
	ProductName string
	ProductSKU  string
	Quantity    int
	Threshold   int
}

// SendLowStockAlert emails the store manager a list of products at or below
// their low-stock threshold.
func (s *EmailService) SendLowStockAlert(toEmail, storeName string, items []LowStockItem) error {
	htmlContent, err := s.renderLowStockEmail(storeName, items)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Low Stock Alert - %s", storeName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	// Gmail requires TLS authentication
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderLowStockEmail renders the low-stock alert email template
func (s *EmailService) renderLowStockEmail(storeName string, items []LowStockItem) (string, error) {
	tmpl, err := template.New("low_stock").Parse(lowStockTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		StoreName string
		Items     []LowStockItem
		AppName   string
	}{
		StoreName: storeName,
		Items:     items,
		AppName:   "POS API",
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// lowStockTemplate is the HTML template for low-stock alert emails
const lowStockTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Low Stock Alert</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <!-- Header -->
                    <tr>
                        <td style="background: linear-gradient(135deg, #f6ad55 0%, #ed8936 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.AppName}}</h1>
                        </td>
                    </tr>

                    <!-- Content -->
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 24px; font-weight: 600;">Low Stock Alert</h2>

                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                The following products at <strong>{{.StoreName}}</strong> are at or below their low-stock threshold:
                            </p>

                            <table role="presentation" style="width: 100%; border-collapse: collapse; margin: 0 0 20px 0;">
                                <tr>
                                    <th style="text-align: left; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #4a5568; font-size: 14px;">Product</th>
                                    <th style="text-align: left; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #4a5568; font-size: 14px;">SKU</th>
                                    <th style="text-align: right; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #4a5568; font-size: 14px;">In Stock</th>
                                    <th style="text-align: right; padding: 8px; border-bottom: 2px solid #e2e8f0; color: #4a5568; font-size: 14px;">Threshold</th>
                                </tr>
                                {{range .Items}}
                                <tr>
                                    <td style="padding: 8px; border-bottom: 1px solid #e2e8f0; color: #1a1a2e; font-size: 14px;">{{.ProductName}}</td>
                                    <td style="padding: 8px; border-bottom: 1px solid #e2e8f0; color: #718096; font-size: 14px;">{{.ProductSKU}}</td>
                                    <td style="padding: 8px; border-bottom: 1px solid #e2e8f0; color: #e53e3e; font-size: 14px; text-align: right;">{{.Quantity}}</td>
                                    <td style="padding: 8px; border-bottom: 1px solid #e2e8f0; color: #718096; font-size: 14px; text-align: right;">{{.Threshold}}</td>
                                </tr>
                                {{end}}
                            </table>

                            <p style="color: #718096; font-size: 14px; line-height: 1.6; margin: 0;">
                                Restock these products to avoid failed checkouts.
                            </p>
                        </td>
                    </tr>

                    <!-- Footer -->
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0 0 10px 0;">
                                This email was sent by {{.AppName}}
                            </p>
                            <p style="color: #cbd5e0; font-size: 12px; margin: 0;">
                                © 2026 {{.AppName}}. All rights reserved.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
