package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/imagine-dev/imagine"
	"github.com/imagine-dev/imagine/internal/config"
)

const welcome = "Hi! Send me a prompt and I'll generate an image.\n\n" +
	"/video <prompt> - generate a short clip\n" +
	"/gallery - show what this chat generated\n" +
	"/clear - forget this chat's gallery"

type bot struct {
	cfg *config.Config
	api *tgbotapi.BotAPI

	mu        sync.Mutex
	galleries map[int64]*imagine.Gallery
}

func newBot(cfg *config.Config) (*bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	slog.Info("telegram bot authorized", "account", api.Self.UserName)
	return &bot{cfg: cfg, api: api, galleries: map[int64]*imagine.Gallery{}}, nil
}

func (b *bot) run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for update := range b.api.GetUpdatesChan(u) {
		if update.Message == nil {
			continue
		}
		b.handleMessage(update.Message)
	}
}

// gallery returns the per-chat session history. Chats are independent
// sessions; nothing survives a restart.
func (b *bot) gallery(chatID int64) *imagine.Gallery {
	b.mu.Lock()
	defer b.mu.Unlock()
	g, ok := b.galleries[chatID]
	if !ok {
		g = imagine.NewGallery()
		b.galleries[chatID] = g
	}
	return g
}

func (b *bot) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "help":
			b.reply(chatID, welcome)
		case "video":
			b.generateVideo(chatID, msg.CommandArguments())
		case "gallery":
			b.showGallery(chatID)
		case "clear":
			b.gallery(chatID).Clear()
			b.reply(chatID, "Gallery cleared.")
		default:
			b.reply(chatID, "Unknown command. Try /help.")
		}
		return
	}

	b.generateImage(chatID, msg.Text)
}

func (b *bot) generateImage(chatID int64, prompt string) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		b.reply(chatID, "Send a text prompt describing the image you want.")
		return
	}

	b.typing(chatID, tgbotapi.ChatUploadPhoto)
	res, err := imagine.GenerateImage(context.Background(), imagine.GenerateImageRequest{
		Prompt:     prompt,
		Model:      b.cfg.DefaultModel,
		Width:      b.cfg.DefaultWidth,
		Height:     b.cfg.DefaultHeight,
		Steps:      b.cfg.DefaultSteps,
		Guidance:   b.cfg.DefaultGuidance,
		Credential: imagine.Credential{Token: b.cfg.HFToken, Provider: b.cfg.HFProvider},
	})
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}
	b.sendResult(chatID, prompt, res)
}

func (b *bot) generateVideo(chatID int64, prompt string) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		b.reply(chatID, "Usage: /video <prompt>")
		return
	}

	b.typing(chatID, tgbotapi.ChatUploadVideo)
	res, err := imagine.GenerateVideo(context.Background(), imagine.GenerateVideoRequest{
		Prompt:     prompt,
		Credential: imagine.Credential{Token: b.cfg.HFToken, Provider: b.cfg.HFProvider},
	})
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}
	b.sendResult(chatID, prompt, res)
}

func (b *bot) sendResult(chatID int64, prompt string, res *imagine.GenerationResult) {
	b.gallery(chatID).Append(prompt, res)

	if len(res.Bytes) == 0 {
		b.reply(chatID, res.Status)
		return
	}

	caption := prompt
	if res.Status != "" {
		caption = res.Status
	}

	var msg tgbotapi.Chattable
	switch {
	case res.Kind == imagine.KindVideo && res.MIME == "video/mp4":
		m := tgbotapi.NewVideo(chatID, tgbotapi.FileBytes{Name: "generation.mp4", Bytes: res.Bytes})
		m.Caption = caption
		msg = m
	case res.Kind == imagine.KindVideo:
		m := tgbotapi.NewAnimation(chatID, tgbotapi.FileBytes{Name: "generation.gif", Bytes: res.Bytes})
		m.Caption = caption
		msg = m
	default:
		m := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "generation.png", Bytes: res.Bytes})
		m.Caption = caption
		msg = m
	}

	if _, err := b.api.Send(msg); err != nil {
		slog.Error("send result", "chat", chatID, "error", err)
		b.reply(chatID, "Could not deliver the artifact: "+err.Error())
	}
}

func (b *bot) showGallery(chatID int64) {
	entries := b.gallery(chatID).Recent(imagine.GalleryDisplayImages)
	if len(entries) == 0 {
		b.reply(chatID, "Nothing generated in this chat yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Session gallery:\n")
	for i, e := range entries {
		fmt.Fprintf(&sb, "#%d [%s/%s] %s\n", i+1, e.Result.Kind, e.Result.Source, e.Prompt)
	}
	b.reply(chatID, sb.String())
}

func (b *bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.Error("send message", "chat", chatID, "error", err)
	}
}

func (b *bot) typing(chatID int64, action string) {
	_, _ = b.api.Request(tgbotapi.NewChatAction(chatID, action))
}
