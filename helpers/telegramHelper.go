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

var telegramClient = &http.Client{Timeout: 10 * time.Second}

// SendOpsAlert posts a message to the ops Telegram chat. Best effort only;
// failures are logged by the caller and never surface to the request.
func SendOpsAlert(text string) error {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatId := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatId == "" {
		log.Println("Telegram bot not configured, skipping ops alert")
		return nil
	}

	payload := map[string]string{
		"chat_id": chatId,
		"text":    text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)
	resp, err := telegramClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram api returned status %d", resp.StatusCode)
	}
	return nil
}
