package notifier

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/sirupsen/logrus"

	config "github.com/andovskaana/Food-Delivery-App-DNICK/configs"
)

// SendOrderPlacedEmail confirms a freshly placed order to the customer.
func SendOrderPlacedEmail(recipientEmail string, customerName string, orderID uint, totalAmount float64) error {
	subject := fmt.Sprintf("Order #%d Confirmation - Thank You for Your Order!", orderID)
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for your order! Your order #%d has been successfully placed.\n\n"+
			"Order Details:\nOrder ID: %d\nTotal Amount: %s\n\n"+
			"We'll notify you when your order is on its way.\n\nBest regards,\nThe Food Delivery Team",
		customerName, orderID, orderID, formatAmount(totalAmount))
	return sendEmail(recipientEmail, orderID, subject, body)
}

// SendOrderDeliveredEmail tells the customer the courier handed the order over.
func SendOrderDeliveredEmail(recipientEmail string, customerName string, orderID uint) error {
	subject := fmt.Sprintf("Order #%d Delivered", orderID)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour order #%d has been delivered. Enjoy your meal!\n\n"+
			"Best regards,\nThe Food Delivery Team",
		customerName, orderID)
	return sendEmail(recipientEmail, orderID, subject, body)
}

func sendEmail(recipientEmail string, orderID uint, subject, bodyText string) error {
	cfg := config.LoadEmailConfig()

	if cfg.SenderEmail == "" {
		return fmt.Errorf("sender email address is not configured in environment variables")
	}
	if recipientEmail == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {
		logrus.WithError(err).Warnf("failed to load AWS SDK config for email to %s (order %d)", recipientEmail, orderID)
		return fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := ses.NewFromConfig(awsCfg)

	input := &ses.SendEmailInput{
		Source: aws.String(cfg.SenderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{recipientEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	if _, err = client.SendEmail(context.TODO(), input); err != nil {
		logrus.WithError(err).Warnf("failed to send email for order %d to %s", orderID, recipientEmail)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logrus.Infof("email sent for order %d to %s", orderID, recipientEmail)
	return nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
