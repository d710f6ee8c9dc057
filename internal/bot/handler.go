package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/benvon/diary-bot/internal/catalog"
	"github.com/benvon/diary-bot/internal/database"
	"github.com/benvon/diary-bot/internal/logger"
	"github.com/benvon/diary-bot/internal/models"
	"github.com/benvon/diary-bot/internal/services/transcription"
	"github.com/benvon/diary-bot/internal/session"
)

const (
	// transcribeTimeout bounds voice download plus transcription
	transcribeTimeout = 60 * time.Second
	// persistTimeout bounds the diary entry insert
	persistTimeout = 10 * time.Second

	nothingToStoreText = "Nothing to store – please send a new message first."
	savedText          = "Saved! ✅"
	captureFailedText  = "Sorry, something went wrong while handling your message. Please send it again."
	saveFailedText     = "Sorry, your entry could not be saved. Press 💾 Done to try again."

	textEchoTemplate  = "This is the text that %s sent:\n\n%s\n\nSelect the tags that apply and press *Done*."
	voiceEchoTemplate = "This is the transcription that %s sent:\n\n%s\n\nSelect the tags that apply and press *Done*."
)

// Messenger is the outbound surface of the Telegram transport.
// *tgbotapi.BotAPI satisfies it.
type Messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Handler binds inbound Telegram updates to the session store, the
// transcription provider, and the entry repository.
type Handler struct {
	messenger   Messenger
	transcriber transcription.Provider
	entries     database.EntryRepositoryInterface
	sessions    *session.Store
	catalog     *catalog.Catalog
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewHandler creates a new update handler
func NewHandler(
	messenger Messenger,
	transcriber transcription.Provider,
	entries database.EntryRepositoryInterface,
	sessions *session.Store,
	cat *catalog.Catalog,
	log *zap.Logger,
) *Handler {
	return &Handler{
		messenger:   messenger,
		transcriber: transcriber,
		entries:     entries,
		sessions:    sessions,
		catalog:     cat,
		// No client-level timeout: per-call deadlines come from the context.
		httpClient: &http.Client{},
		logger:     log,
	}
}

// HandleUpdate dispatches one update. It is the error boundary for an
// interaction: panics and errors are logged here and never reach the
// polling loop, so one failed update cannot affect other users' sessions.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic_while_handling_update",
				zap.Int("update_id", update.UpdateID),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
		}
	}()

	var (
		err    error
		kind   string
		userID int64
	)

	switch {
	case update.CallbackQuery != nil:
		kind = "callback"
		userID = update.CallbackQuery.From.ID
		err = h.handleCallback(ctx, update.CallbackQuery)

	case update.Message != nil && (update.Message.Voice != nil || update.Message.Audio != nil):
		kind = "voice"
		userID = update.Message.From.ID
		err = h.handleVoice(ctx, update.Message)

	case update.Message != nil && update.Message.Text != "":
		if strings.HasPrefix(update.Message.Text, "/") {
			// Commands are not part of the diary flow
			return
		}
		kind = "text"
		userID = update.Message.From.ID
		err = h.handleText(ctx, update.Message)

	default:
		return
	}

	if err != nil {
		h.logger.Error("update_handling_failed",
			zap.Int("update_id", update.UpdateID),
			zap.String("event", kind),
			zap.Int64("user_id", userID),
			zap.String("error", logger.SanitizeError(err)),
		)
	}
}

// handleText seeds a session with the raw text and offers the tag keyboard
func (h *Handler) handleText(ctx context.Context, msg *tgbotapi.Message) error {
	capturedAt := time.Now().UTC()
	h.sessions.Begin(msg.From.ID, msg.Text, capturedAt)

	h.logger.Info("text_message_received",
		zap.Int64("user_id", msg.From.ID),
		zap.String("username", logger.SanitizeUsername(msg.From.UserName)),
		zap.Int("text_length", len(msg.Text)),
	)

	return h.sendTagPrompt(msg.Chat.ID, textEchoTemplate, displayName(msg.From), msg.Text)
}

// handleVoice downloads the audio, transcribes it, then proceeds as text
func (h *Handler) handleVoice(ctx context.Context, msg *tgbotapi.Message) error {
	ctx, cancel := context.WithTimeout(ctx, transcribeTimeout)
	defer cancel()

	fileID, filename := audioFileRef(msg)

	text, err := h.transcribeFile(ctx, fileID, filename)
	if err != nil {
		h.notify(msg.Chat.ID, captureFailedText)
		return fmt.Errorf("voice message handling: %w", err)
	}

	if text == "" {
		// An empty transcription still opens a session; the entry is stored
		// as-is, matching the text path.
		h.logger.Debug("empty_transcription_result",
			zap.Int64("user_id", msg.From.ID),
		)
	}

	capturedAt := time.Now().UTC()
	h.sessions.Begin(msg.From.ID, text, capturedAt)

	h.logger.Info("voice_message_transcribed",
		zap.Int64("user_id", msg.From.ID),
		zap.String("username", logger.SanitizeUsername(msg.From.UserName)),
		zap.Int("text_length", len(text)),
	)

	return h.sendTagPrompt(msg.Chat.ID, voiceEchoTemplate, displayName(msg.From), text)
}

// transcribeFile resolves the Telegram file URL, streams the audio, and
// runs it through the transcription provider.
func (h *Handler) transcribeFile(ctx context.Context, fileID, filename string) (string, error) {
	fileURL, err := h.messenger.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve audio file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build audio download request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download audio file: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("audio download returned status %d", resp.StatusCode)
	}

	return h.transcriber.Transcribe(ctx, resp.Body, filename)
}

// handleCallback processes tag toggles and the Done press
func (h *Handler) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// Acknowledge immediately so the client stops its spinner
	if _, err := h.messenger.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		h.logger.Debug("callback_ack_failed", zap.String("error", logger.SanitizeError(err)))
	}

	if query.Message == nil {
		return fmt.Errorf("callback without originating message")
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	userID := query.From.ID

	switch {
	case strings.HasPrefix(query.Data, callbackTagPrefix):
		return h.handleToggle(chatID, messageID, userID, strings.TrimPrefix(query.Data, callbackTagPrefix))
	case query.Data == callbackDone:
		return h.handleDone(ctx, chatID, messageID, query.From)
	default:
		return fmt.Errorf("unknown callback data %q", query.Data)
	}
}

// handleToggle flips one tag and re-renders the keyboard in place
func (h *Handler) handleToggle(chatID int64, messageID int, userID int64, tagID string) error {
	selected, err := h.sessions.Toggle(userID, tagID)
	if errors.Is(err, session.ErrNoActiveSession) {
		return h.editText(chatID, messageID, nothingToStoreText)
	}
	if err != nil {
		return fmt.Errorf("toggle failed: %w", err)
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, Keyboard(h.catalog.Tags(), selected))
	if _, err := h.messenger.Request(edit); err != nil {
		return fmt.Errorf("failed to update tag keyboard: %w", err)
	}
	return nil
}

// handleDone completes the session and persists the entry
func (h *Handler) handleDone(ctx context.Context, chatID int64, messageID int, from *tgbotapi.User) error {
	snap, err := h.sessions.Complete(from.ID)
	if errors.Is(err, session.ErrNoActiveSession) {
		return h.editText(chatID, messageID, nothingToStoreText)
	}
	if err != nil {
		return fmt.Errorf("complete failed: %w", err)
	}

	entry := &models.DiaryEntry{
		UserID:    from.ID,
		Username:  from.UserName,
		Timestamp: snap.CapturedAt,
		Text:      snap.Text,
		Tags:      orderTags(h.catalog, snap.Selected),
	}

	persistCtx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	if err := h.entries.Create(persistCtx, entry); err != nil {
		// Keep the session so the user can press Done again once the
		// database recovers. A new message that arrived while the save was
		// failing takes precedence over the old snapshot.
		h.sessions.RestoreIfAbsent(from.ID, snap)
		h.notify(chatID, saveFailedText)
		return fmt.Errorf("failed to persist diary entry: %w", err)
	}

	h.logger.Info("diary_entry_saved",
		zap.Int64("user_id", from.ID),
		zap.Strings("tags", entry.Tags),
		zap.Int("text_length", len(entry.Text)),
	)

	// Editing the text without markup also removes the toggle keyboard
	return h.editText(chatID, messageID, savedText)
}

// sendTagPrompt echoes the captured text together with a fresh keyboard
func (h *Handler) sendTagPrompt(chatID int64, template, name, text string) error {
	reply := tgbotapi.NewMessage(chatID, fmt.Sprintf(template, name, text))
	reply.ParseMode = tgbotapi.ModeMarkdown
	reply.ReplyMarkup = Keyboard(h.catalog.Tags(), nil)

	if _, err := h.messenger.Send(reply); err != nil {
		return fmt.Errorf("failed to send tag prompt: %w", err)
	}
	return nil
}

func (h *Handler) editText(chatID int64, messageID int, text string) error {
	if _, err := h.messenger.Request(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// notify sends a best-effort plain message; failures are only logged since
// the caller is already on an error path.
func (h *Handler) notify(chatID int64, text string) {
	if _, err := h.messenger.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.logger.Warn("failed_to_notify_user",
			zap.Int64("chat_id", chatID),
			zap.String("error", logger.SanitizeError(err)),
		)
	}
}

// audioFileRef picks the file id and a filename hint from a voice or audio
// message
func audioFileRef(msg *tgbotapi.Message) (fileID, filename string) {
	if msg.Voice != nil {
		return msg.Voice.FileID, "voice.ogg"
	}
	if msg.Audio.FileName != "" {
		return msg.Audio.FileID, msg.Audio.FileName
	}
	return msg.Audio.FileID, "audio.mp3"
}

// orderTags puts catalog tags first in catalog order, followed by any
// off-catalog toggles in the order the snapshot delivered them.
func orderTags(cat *catalog.Catalog, selected []string) []string {
	remaining := make(map[string]bool, len(selected))
	for _, id := range selected {
		remaining[id] = true
	}

	ordered := make([]string, 0, len(selected))
	for _, tag := range cat.Tags() {
		if remaining[tag.ID] {
			ordered = append(ordered, tag.ID)
			delete(remaining, tag.ID)
		}
	}
	for _, id := range selected {
		if remaining[id] {
			ordered = append(ordered, id)
		}
	}
	return ordered
}

func displayName(user *tgbotapi.User) string {
	if user.UserName != "" {
		return user.UserName
	}
	return strconv.FormatInt(user.ID, 10)
}
