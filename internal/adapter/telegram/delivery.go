package telegram

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	maxInlineBytes = 4000
	attachmentName = "response.txt"
	textSentAsFile = "📄 Response was too long, sent as file!"
)

// deliver sends replies longer than maxInlineBytes (UTF-8 bytes) as a text
// document followed by a short notice.
func (d *Dispatcher) deliver(chatID int64, text string) {
	if !shouldSendAsFile(text) {
		d.sendText(chatID, text)
		return
	}

	if err := d.sendAsFile(chatID, text); err != nil {
		log.Printf("failed to send file: %v", err)
		return
	}
	d.sendText(chatID, textSentAsFile)
}

func (d *Dispatcher) sendAsFile(chatID int64, content string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  attachmentName,
		Bytes: []byte(content),
	})

	_, err := d.sender.Send(doc)
	return err
}

func shouldSendAsFile(text string) bool {
	return len(text) > maxInlineBytes
}
