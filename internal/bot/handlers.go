package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v4"

	"github.com/letsssgooo/mcqPollBot/internal/client"
	"github.com/letsssgooo/mcqPollBot/internal/domain/models"
	"github.com/letsssgooo/mcqPollBot/internal/events/sender"
	"github.com/letsssgooo/mcqPollBot/internal/mcq"
	"github.com/letsssgooo/mcqPollBot/internal/quiz"
	"github.com/letsssgooo/mcqPollBot/internal/storage"
)

// Размер таблицы лидеров в /top.
const leaderboardSize = 10

// upload — описание присланного документа.
type upload struct {
	fileID string
	name   string
	mime   string
	size   int64
}

func (b *Bot) handleHelp(_ context.Context, req request) error {
	return b.reply(req.chatID, msgHelp)
}

func (b *Bot) handleForbidden(_ context.Context, req request) error {
	b.log.Warn("forbidden command", slog.Int64("user_id", req.user.TelegramID), slog.String("text", req.text))
	return b.reply(req.chatID, msgForbidden)
}

func (b *Bot) handleQuiz(ctx context.Context, req request) error {
	record, ok := b.bank.Random()
	if !ok {
		return b.reply(req.chatID, msgEmptyBank)
	}

	res := b.dispatch(ctx, req.chatID, []mcq.QuestionRecord{record})
	if res.Failed > 0 {
		return b.reply(req.chatID, fmt.Sprintf(msgDispatched, 0, 1))
	}

	return nil
}

func (b *Bot) handleReload(_ context.Context, req request) error {
	report, err := b.bank.Reload()
	if err != nil {
		b.log.Error("failed to reload questions", slog.String("error", err.Error()))
		return b.reply(req.chatID, msgReloadFailed)
	}

	b.log.Info("questions reloaded",
		slog.String("file", b.bank.Path()),
		slog.Int("questions", len(report.Records)),
		slog.Int("dropped", report.Dropped),
		slog.Int("defaulted", report.Defaulted),
	)

	switch {
	case len(report.Records) == 0:
		return b.reply(req.chatID, msgNoQuestions)
	case report.Dropped > 0:
		return b.reply(req.chatID, fmt.Sprintf(msgReloadedSkipped, len(report.Records), report.Dropped))
	default:
		return b.reply(req.chatID, fmt.Sprintf(msgReloaded, len(report.Records)))
	}
}

func (b *Bot) onDocument(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Document == nil {
		return nil
	}

	doc := msg.Document
	return b.handleDocument(b.context(), requestFrom(c), upload{
		fileID: doc.FileID,
		name:   doc.FileName,
		mime:   doc.MIME,
		size:   int64(doc.FileSize),
	})
}

func (b *Bot) handleDocument(ctx context.Context, req request, up upload) error {
	if !isTextDocument(up.name, up.mime) {
		return b.reply(req.chatID, msgNotText)
	}

	tooLarge := fmt.Sprintf(msgFileTooLarge, b.maxUpload/1024)
	if up.size > b.maxUpload {
		return b.reply(req.chatID, tooLarge)
	}

	data, err := b.client.DownloadFile(up.fileID, b.maxUpload)
	if errors.Is(err, client.ErrFileTooLarge) {
		return b.reply(req.chatID, tooLarge)
	}
	if err != nil {
		b.log.Error("failed to download document", slog.String("file", up.name), slog.String("error", err.Error()))
		return b.reply(req.chatID, msgDownloadFailed)
	}

	report := b.parser.ParseReport(string(data))
	b.log.Info("document parsed",
		slog.Int64("user_id", req.user.TelegramID),
		slog.String("file", up.name),
		slog.Int("questions", len(report.Records)),
		slog.Int("dropped", report.Dropped),
		slog.Int("defaulted", report.Defaulted),
	)

	if len(report.Records) == 0 {
		return b.reply(req.chatID, msgNoQuestions)
	}

	set := models.NewQuestionSet(req.user.TelegramID, req.chatID, up.name, report.Records)
	saved := true
	if err = b.storage.SaveSet(ctx, set); err != nil {
		saved = false
		b.log.Error("failed to save question set", slog.String("set_id", set.ID.String()), slog.String("error", err.Error()))
	}

	res := b.dispatch(ctx, req.chatID, report.Records)

	summary := dispatchSummary(res, len(report.Records), report.Dropped)
	if saved {
		summary += fmt.Sprintf(msgSetSaved, set.ID, set.ID)
	} else {
		summary += "\n" + msgSaveFailed
	}

	return b.reply(req.chatID, summary)
}

// handleText отправляет вопросы из текста сообщения. Подсказки на прочий текст
// отправляются только в личном чате, в группах такие сообщения молча игнорируются.
func (b *Bot) handleText(ctx context.Context, req request) error {
	if strings.HasPrefix(req.text, "/") {
		if !req.private {
			return nil
		}

		return b.reply(req.chatID, msgHelp)
	}

	report := b.parser.ParseReport(req.text)
	if len(report.Records) == 0 {
		if !req.private {
			return nil
		}

		return b.reply(req.chatID, msgUnknownText)
	}

	res := b.dispatch(ctx, req.chatID, report.Records)
	if res.Failed == 0 && report.Dropped == 0 {
		return nil
	}

	return b.reply(req.chatID, dispatchSummary(res, len(report.Records), report.Dropped))
}

func (b *Bot) handleSets(ctx context.Context, req request) error {
	sets, err := b.storage.ListSets(ctx, req.user.TelegramID)
	if err != nil {
		b.log.Error("failed to list sets", slog.String("error", err.Error()))
		return b.reply(req.chatID, msgStorageFailed)
	}

	if len(sets) == 0 {
		return b.reply(req.chatID, msgNoSets)
	}

	lines := make([]string, 0, len(sets)+1)
	lines = append(lines, msgSetsHeader)
	for _, set := range sets {
		lines = append(lines, fmt.Sprintf(msgSetLine, set.ID, set.Name, len(set.Questions)))
	}

	return b.replyLines(req.chatID, lines...)
}

func (b *Bot) handlePlay(ctx context.Context, req request) error {
	if len(req.args) == 0 {
		return b.reply(req.chatID, msgUsagePlay)
	}

	set, ok, err := b.loadSet(ctx, req, req.args[0])
	if !ok {
		return err
	}

	res := b.dispatch(ctx, req.chatID, set.Questions)
	if res.Failed == 0 {
		return nil
	}

	return b.reply(req.chatID, dispatchSummary(res, len(set.Questions), 0))
}

func (b *Bot) handleDelete(ctx context.Context, req request) error {
	if len(req.args) == 0 {
		return b.reply(req.chatID, msgUsageDelete)
	}

	set, ok, err := b.loadSet(ctx, req, req.args[0])
	if !ok {
		return err
	}

	if set.OwnerID != req.user.TelegramID {
		return b.reply(req.chatID, msgNotYourSet)
	}

	if err = b.storage.DeleteSet(ctx, set.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		b.log.Error("failed to delete set", slog.String("set_id", set.ID.String()), slog.String("error", err.Error()))
		return b.reply(req.chatID, msgStorageFailed)
	}

	return b.reply(req.chatID, msgSetDeleted)
}

// handleExport отправляет вопросы документом. Аргументы в любом порядке:
// "csv" выбирает формат CSV, ID набора выбирает набор вместо набора по умолчанию.
func (b *Bot) handleExport(ctx context.Context, req request) error {
	asCSV := false
	records := b.bank.Questions()
	name := "questions"

	for _, arg := range req.args {
		if strings.EqualFold(arg, "csv") {
			asCSV = true
			continue
		}

		set, ok, err := b.loadSet(ctx, req, arg)
		if !ok {
			return err
		}
		records = set.Questions
		if base := strings.TrimSuffix(set.Name, filepath.Ext(set.Name)); base != "" {
			name = base
		}
	}

	if len(records) == 0 {
		return b.reply(req.chatID, msgEmptyBank)
	}

	var (
		data []byte
		err  error
	)
	if asCSV {
		name += ".csv"
		data, err = quiz.ExportCSV(records)
	} else {
		name += ".txt"
		data = []byte(mcq.Format(records))
	}
	if err != nil {
		b.log.Error("failed to export questions", slog.String("error", err.Error()))
		return b.reply(req.chatID, msgExportFailed)
	}

	if err = b.sender.Document(req.chatID, name, data); err != nil {
		b.log.Error("failed to send export", slog.String("error", err.Error()))
		return b.reply(req.chatID, msgExportFailed)
	}

	return nil
}

func (b *Bot) handleScore(_ context.Context, req request) error {
	stats, ok := b.tracker.Stats(req.user.TelegramID)
	if !ok {
		return b.reply(req.chatID, msgNoScore)
	}

	return b.reply(req.chatID, fmt.Sprintf(msgScore, stats.Answered, stats.Correct))
}

func (b *Bot) handleTop(_ context.Context, req request) error {
	board := b.tracker.Leaderboard(leaderboardSize)
	if len(board) == 0 {
		return b.reply(req.chatID, msgNoLeaders)
	}

	lines := make([]string, 0, len(board))
	for _, e := range board {
		lines = append(lines, fmt.Sprintf(msgLeaderLine, e.Rank, e.Participant.DisplayName(), e.Correct, e.Answered))
	}

	return b.replyLines(req.chatID, lines...)
}

func (b *Bot) onPollAnswer(c tele.Context) error {
	pa := c.PollAnswer()
	if pa == nil || pa.Sender == nil {
		return nil
	}

	b.handlePollAnswer(pa.PollID, participantFrom(pa.Sender), pa.Options)

	return nil
}

// handlePollAnswer учитывает ответ на опрос. Ответы на неизвестные опросы
// (например, отправленные до перезапуска) только логируются.
func (b *Bot) handlePollAnswer(pollID string, participant quiz.Participant, options []int) {
	res, err := b.tracker.Answer(pollID, participant, options)
	if err != nil {
		b.log.Debug("poll answer ignored",
			slog.String("poll_id", pollID),
			slog.Int64("user_id", participant.TelegramID),
			slog.String("reason", err.Error()),
		)
		return
	}

	b.log.Info("poll answered",
		slog.String("poll_id", pollID),
		slog.Int64("user_id", participant.TelegramID),
		slog.String("chosen", mcq.IndexToLetter(res.Chosen)),
		slog.Bool("correct", res.Correct),
		slog.Bool("counted", res.Counted),
	)
}

// loadSet находит набор по строковому ID. Если набора нет, пользователю уже
// отправлен ответ и ok ложно.
func (b *Bot) loadSet(ctx context.Context, req request, rawID string) (set *models.QuestionSet, ok bool, err error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, false, b.reply(req.chatID, msgBadSetID)
	}

	set, err = b.storage.GetSet(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, b.reply(req.chatID, msgUnknownSet)
	}
	if err != nil {
		b.log.Error("failed to get set", slog.String("set_id", rawID), slog.String("error", err.Error()))
		return nil, false, b.reply(req.chatID, msgStorageFailed)
	}

	return set, true, nil
}

// dispatch отправляет вопросы опросами и запоминает их для подсчёта ответов.
func (b *Bot) dispatch(ctx context.Context, chatID int64, records []mcq.QuestionRecord) sender.Result {
	res := b.sender.Polls(ctx, chatID, records)
	b.tracker.Track(chatID, res.Sent...)

	return res
}

func dispatchSummary(res sender.Result, total, skipped int) string {
	summary := fmt.Sprintf(msgDispatched, len(res.Sent), total)
	if res.Failed > 0 {
		summary += fmt.Sprintf(msgDispatchFailed, res.Failed)
	}
	if skipped > 0 {
		summary += fmt.Sprintf(msgDispatchSkipped, skipped)
	}

	return summary
}

func isTextDocument(name, mime string) bool {
	if strings.HasPrefix(mime, "text/") {
		return true
	}

	return strings.EqualFold(filepath.Ext(name), ".txt")
}
