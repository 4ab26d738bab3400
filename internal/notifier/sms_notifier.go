package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	config "github.com/andovskaana/Food-Delivery-App-DNICK/configs"
)

type SMSResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			StatusCode int    `json:"statusCode"`
			Number     string `json:"number"`
			Cost       string `json:"cost"`
			Status     string `json:"status"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// SendOrderPlacedSMS texts the customer a checkout confirmation.
func SendOrderPlacedSMS(toPhoneNumber string, orderID uint, totalAmount float64) error {
	if toPhoneNumber == "" {
		return fmt.Errorf("recipient phone number is empty")
	}

	cfg := config.LoadAfricaTalkingConfig()

	message := fmt.Sprintf("Your order #%d has been placed! Total: %.2f. Track it in the app.", orderID, totalAmount)

	data := url.Values{}
	data.Set("username", cfg.Username)
	data.Set("to", toPhoneNumber)
	data.Set("message", message)
	data.Set("from", cfg.SenderID)

	client := &http.Client{}
	req, err := http.NewRequest("POST", cfg.SMSURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", cfg.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		logrus.WithError(err).Warnf("SMS send failed to %s for order %d", toPhoneNumber, orderID)
		return fmt.Errorf("SMS send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var smsResp SMSResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&smsResp); decodeErr == nil {
			logrus.Warnf("SMS API returned status %d for %s (order %d): %s",
				resp.StatusCode, toPhoneNumber, orderID, smsResp.SMSMessageData.Message)
		} else {
			logrus.Warnf("SMS API returned status %d for %s (order %d), undecodable body: %v",
				resp.StatusCode, toPhoneNumber, orderID, decodeErr)
		}
		return fmt.Errorf("SMS API returned non-success status: %d", resp.StatusCode)
	}

	var smsResp SMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&smsResp); err != nil {
		return fmt.Errorf("failed to decode SMS response: %w", err)
	}

	logrus.Infof("SMS sent to %s for order %d: %s", toPhoneNumber, orderID, smsResp.SMSMessageData.Message)
	return nil
}
