package telegram

import (
	"context"
	"errors"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"deepseek-telegram-bot/internal/config"
	"deepseek-telegram-bot/internal/usecase/chat"
)

const (
	textUnauthorized = "Unauthorized account."
	textCleared      = "Conversation history cleared."
	textFailure      = "❌ Sorry, I encountered an error. Please try again!"
	textEmpty        = "Please send some text."

	textWelcome = "Welcome! How can I help you today?\n\n" +
		"Available commands:\n" +
		"/help - Show this help message\n" +
		"/model - Show current model\n" +
		"/clear - Clear conversation history\n\n" +
		"Type '/' in the input field to see available commands."

	textHelp = "Here are the available commands:\n" +
		"/start - Start the conversation and initialize history\n" +
		"/help - Show this help message\n" +
		"/model - Display the current model in use\n" +
		"/clear - Clear the conversation history"
)

// Sender is the part of *tgbotapi.BotAPI the dispatcher needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Conversations interface {
	Reset(userID int64)
	Respond(ctx context.Context, userID int64, text string) (string, error)
}

type Dispatcher struct {
	sender     Sender
	conv       Conversations
	model      string
	authorized map[int64]struct{}
	queue      *keyedQueue
}

func NewDispatcher(sender Sender, conv Conversations, cfg config.Config) *Dispatcher {
	allowed := make(map[int64]struct{}, len(cfg.AuthorizedUserIDs))
	for _, id := range cfg.AuthorizedUserIDs {
		allowed[id] = struct{}{}
	}

	return &Dispatcher{
		sender:     sender,
		conv:       conv,
		model:      cfg.Model,
		authorized: allowed,
		queue:      newKeyedQueue(),
	}
}

func (d *Dispatcher) RegisterCommands() error {
	_, err := d.sender.Request(tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Start conversation and initialize history"},
		tgbotapi.BotCommand{Command: "help", Description: "Show help message"},
		tgbotapi.BotCommand{Command: "model", Description: "Display current model"},
		tgbotapi.BotCommand{Command: "clear", Description: "Clear conversation history"},
	))
	return err
}

// Dispatch queues the update behind earlier updates from the same sender and
// returns without waiting for it to be handled.
func (d *Dispatcher) Dispatch(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil || msg.Text == "" {
		return
	}
	d.queue.Submit(msg.From.ID, func() {
		d.handleMessage(ctx, msg)
	})
}

// Wait blocks until all queued updates are handled.
func (d *Dispatcher) Wait() {
	d.queue.Wait()
}

func (d *Dispatcher) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			d.handleStart(msg)
		case "help":
			d.sendText(msg.Chat.ID, textHelp)
		case "model":
			d.sendText(msg.Chat.ID, "Current model: "+d.model)
		case "clear":
			d.handleClear(msg)
		}
		return
	}
	d.handleText(ctx, msg)
}

func (d *Dispatcher) handleStart(msg *tgbotapi.Message) {
	if !d.allow(msg) {
		return
	}
	d.conv.Reset(msg.From.ID)
	d.sendText(msg.Chat.ID, textWelcome)
	log.Printf("user %d (%s) sent /start", msg.From.ID, username(msg.From))
}

func (d *Dispatcher) handleClear(msg *tgbotapi.Message) {
	if !d.allow(msg) {
		return
	}
	d.conv.Reset(msg.From.ID)
	d.sendText(msg.Chat.ID, textCleared)
}

func (d *Dispatcher) handleText(ctx context.Context, msg *tgbotapi.Message) {
	if !d.allow(msg) {
		return
	}
	log.Printf("user %d (%s) wrote %d bytes", msg.From.ID, username(msg.From), len(msg.Text))

	d.sendChatAction(msg.Chat.ID)

	resp, err := d.conv.Respond(ctx, msg.From.ID, msg.Text)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			d.sendText(msg.Chat.ID, textEmpty)
			return
		}
		log.Printf("api error: %v", err)
		d.sendText(msg.Chat.ID, textFailure)
		return
	}

	d.deliver(msg.Chat.ID, resp)
}

// allow replies with the unauthorized notice when the sender is not listed.
func (d *Dispatcher) allow(msg *tgbotapi.Message) bool {
	if d.isAuthorized(msg.From.ID) {
		return true
	}
	log.Printf("unauthorized user %d (%s)", msg.From.ID, username(msg.From))
	d.sendText(msg.Chat.ID, textUnauthorized)
	return false
}

func (d *Dispatcher) isAuthorized(userID int64) bool {
	_, ok := d.authorized[userID]
	return ok
}

func (d *Dispatcher) sendText(chatID int64, text string) {
	if _, err := d.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("failed to send reply: %v", err)
	}
}

func (d *Dispatcher) sendChatAction(chatID int64) {
	if _, err := d.sender.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.Printf("failed to send chat action: %v", err)
	}
}

func username(u *tgbotapi.User) string {
	if u.UserName == "" {
		return "no username"
	}
	return u.UserName
}
