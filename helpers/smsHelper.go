package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

var smsClient = &http.Client{Timeout: 10 * time.Second}

// SendOtpSms posts the OTP to the SMS gateway. Fire-and-forget: the caller
// only logs a failure, delivery is never part of the request outcome.
func SendOtpSms(phone string, code string) error {
	gatewayUrl := os.Getenv("SMS_GATEWAY_URL")
	if gatewayUrl == "" {
		log.Println("SMS_GATEWAY_URL not set, skipping OTP sms to", phone)
		return nil
	}

	payload := map[string]string{
		"to":      phone,
		"message": fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, gatewayUrl, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SMS_API_KEY"))

	resp, err := smsClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
