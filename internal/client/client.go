package client

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	tele "gopkg.in/telebot.v4"
)

// BotAPI — часть *telebot.Bot, которая нужна клиенту.
type BotAPI interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	File(file *tele.File) (io.ReadCloser, error)
}

// TelebotClient реализует Client через telebot.
type TelebotClient struct {
	bot BotAPI
}

// NewTelebotClient создаёт клиента поверх бота.
func NewTelebotClient(bot BotAPI) *TelebotClient {
	return &TelebotClient{bot: bot}
}

// NewBot создаёт *telebot.Bot с заданным поллером и таймаутом запросов.
// Обработчик ошибок onError вызывается для ошибок обработчиков и поллера.
func NewBot(token string, poller tele.Poller, onError func(error, tele.Context)) (*tele.Bot, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:   token,
		Poller:  poller,
		OnError: onError,
		Client:  &http.Client{Timeout: timeoutRequest + pollerSlack(poller)},
	})
	if err != nil {
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}

	return bot, nil
}

// pollerSlack — запас к таймауту HTTP-клиента на время long polling.
func pollerSlack(poller tele.Poller) time.Duration {
	if lp, ok := poller.(*tele.LongPoller); ok {
		return lp.Timeout
	}

	return 0
}

// SendMessage отправляет сообщение text в чат chatID.
func (c *TelebotClient) SendMessage(chatID int64, text string, opts *SendOptions) (*Message, error) {
	var sendOpts []interface{}
	if opts != nil && opts.ParseMode != "" {
		sendOpts = append(sendOpts, &tele.SendOptions{ParseMode: tele.ParseMode(opts.ParseMode)})
	}

	msg, err := c.bot.Send(tele.ChatID(chatID), text, sendOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}

	return toMessage(msg), nil
}

// SendPoll отправляет опрос-викторину poll в чат chatID.
func (c *TelebotClient) SendPoll(chatID int64, poll *Poll) (*Message, error) {
	p := &tele.Poll{
		Type:            tele.PollQuiz,
		Question:        poll.Question,
		CorrectOption:   poll.CorrectOption,
		Explanation:     poll.Explanation,
		Anonymous:       poll.Anonymous,
		MultipleAnswers: poll.MultipleAnswers,
	}
	p.AddOptions(poll.Options...)

	msg, err := c.bot.Send(tele.ChatID(chatID), p)
	if err != nil {
		return nil, fmt.Errorf("failed to send poll to chat %d: %w", chatID, err)
	}

	return toMessage(msg), nil
}

// SendDocument отправляет файл с названием fileName и содержимым data в чат chatID.
func (c *TelebotClient) SendDocument(chatID int64, fileName string, data []byte) error {
	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(data)),
		FileName: fileName,
	}

	if _, err := c.bot.Send(tele.ChatID(chatID), doc); err != nil {
		return fmt.Errorf("failed to send document %s to chat %d: %w", fileName, chatID, err)
	}

	return nil
}

// DownloadFile скачивает файл fileID. Файлы больше limit байт не читаются до конца.
func (c *TelebotClient) DownloadFile(fileID string, limit int64) ([]byte, error) {
	rc, err := c.bot.File(&tele.File{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}

	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}

	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, limit)
	}

	return data, nil
}

func toMessage(msg *tele.Message) *Message {
	if msg == nil {
		return &Message{}
	}

	m := &Message{MessageID: msg.ID}
	if msg.Chat != nil {
		m.ChatID = msg.Chat.ID
	}
	if msg.Poll != nil {
		m.PollID = msg.Poll.ID
	}

	return m
}
