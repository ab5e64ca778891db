package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "focus-cam/internal/application"
	"focus-cam/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я проверяю снимки на резкость и освещённость.

📸 Пришлите фото, я оценю его и отправлю дальше, если оно годное.

📋 Команды:
/check - проверить снимок
/help - справка
/cancel - отменить текущую операцию`

	msgHelp = `ℹ️ Как это работает:

1️⃣ Пришлите фото
2️⃣ Бот оценит резкость и яркость
3️⃣ Годный снимок сразу уходит на сервер

💡 Рекомендации:
• Держите камеру неподвижно
• Снимайте при ровном освещении
• Не снимайте против света

📋 Команды:
/check - проверить снимок
/cancel - отменить операцию`

	msgAwaitingPhoto   = "📸 Пришлите фото для проверки."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendPhoto       = "📸 Пожалуйста, пришлите фото для проверки."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Оцениваю снимок..."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другое фото."
)

// Bot Telegram-интерфейс к проверке снимков
type Bot struct {
	api         *tgbotapi.BotAPI
	users       *app.UserService
	inspections *app.InspectionService
}

// NewBot создаёт нового бота
func NewBot(token string, users *app.UserService, inspections *app.InspectionService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:         api,
		users:       users,
		inspections: inspections,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	var err error
	switch msg.Command() {
	case "start":
		_, err = b.users.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "check":
		_, err = b.users.BeginCheck(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgAwaitingPhoto)

	case "cancel":
		_, err = b.users.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
	if err != nil {
		log.Printf("Error updating user: %v", err)
	}
}

// handlePhoto оценивает присланное фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Берём файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	out, err := b.inspections.AcceptPhoto(ctx, msg.From.ID, msg.Chat.ID, imageData)
	if err != nil {
		log.Printf("Error assessing photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	b.sendMessage(msg.Chat.ID, FormatOutput(out))
}

// FormatOutput готовит текст ответа по результату проверки.
func FormatOutput(out *app.InspectionOutput) string {
	a := out.Assessment
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Резкость: %.1f\n", mark(a.Readiness.FocusOK), a.Metrics.Focus)
	fmt.Fprintf(&sb, "%s Яркость: %.1f\n", mark(a.Readiness.BrightnessOK), a.Metrics.Brightness)

	switch {
	case !a.Readiness.Ready():
		sb.WriteString("\n" + advice(a.Readiness))
	case out.UploadErr != nil:
		sb.WriteString("\n⚠️ Снимок годный, но отправить его не удалось.")
	case out.Upload == nil:
		sb.WriteString("\n✅ Снимок годный.")
	case out.Upload.Success:
		sb.WriteString("\n✅ Снимок годный и отправлен.")
	default:
		fmt.Fprintf(&sb, "\n⚠️ Сервер не принял снимок (статус %d).", out.Upload.StatusCode)
	}
	return sb.String()
}

func mark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

func advice(r entity.Readiness) string {
	switch {
	case !r.FocusOK && !r.BrightnessOK:
		return "📷 Снимок размыт и плохо освещён. Переснимите."
	case !r.FocusOK:
		return "📷 Снимок размыт. Держите камеру неподвижно и переснимите."
	default:
		return "💡 Проблема с освещением. Переснимите при ровном свете."
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
