package notifier

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	config "github.com/alighauridev/ASE-Server/configs"
)

// EmailNotifier sends order confirmations through AWS SES.
type EmailNotifier struct {
	client *ses.Client
	sender string
}

func NewEmailNotifier(ctx context.Context, cfg config.EmailConfig) (*EmailNotifier, error) {
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("sender email address is not configured in environment variables")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return &EmailNotifier{
		client: ses.NewFromConfig(awsCfg),
		sender: cfg.SenderEmail,
	}, nil
}

func (n *EmailNotifier) SendOrderConfirmation(ctx context.Context, msg OrderConfirmation) error {
	if msg.Email == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	subject := fmt.Sprintf("Order #%d Confirmation - Thank You for Your Purchase!", msg.OrderID)
	totalStr := strconv.FormatFloat(msg.TotalPrice, 'f', 2, 64)

	var itemLines strings.Builder
	var itemHTML strings.Builder
	for _, item := range msg.Items {
		itemLines.WriteString(fmt.Sprintf("Product %d x%d @ %.2f\n", item.ProductID, item.Quantity, item.Price))
		itemHTML.WriteString(fmt.Sprintf("<li>Product %d x%d @ %.2f</li>", item.ProductID, item.Quantity, item.Price))
	}

	address := fmt.Sprintf("%s, %s, %s %s, %s",
		msg.ShippingInfo.Address, msg.ShippingInfo.City, msg.ShippingInfo.State,
		msg.ShippingInfo.Pincode, msg.ShippingInfo.Country)

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Thank you for your order! Your order #%d has been successfully placed.</p>
            <p><strong>Order Details:</strong></p>
            <ul>%s</ul>
            <p>Shipping to: %s</p>
            <p>Total Amount: %s</p>
            <p>We'll send you another email when your order ships.</p>
            <p>Best regards,</p>
            <p>Your E-commerce Team</p>
        </body>
        </html>`, msg.Name, msg.OrderID, itemHTML.String(), address, totalStr)

	bodyText := fmt.Sprintf(
		"Dear %s,\n\nThank you for your order! Your order #%d has been successfully placed.\n\n"+
			"Order Details:\n%s\nShipping to: %s\nTotal Amount: %s\n\n"+
			"We'll send you another email when your order ships.\n\nBest regards,\nYour E-commerce Team",
		msg.Name, msg.OrderID, itemLines.String(), address, totalStr)

	input := &ses.SendEmailInput{
		Source: aws.String(n.sender),
		Destination: &types.Destination{
			ToAddresses: []string{msg.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		log.Printf("Failed to send email for order %d to %s: %v", msg.OrderID, msg.Email, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Order confirmation email sent successfully for order %d to %s", msg.OrderID, msg.Email)
	return nil
}
