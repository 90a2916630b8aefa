package client

import (
	"errors"
	"time"
)

// Message представляет отправленное сообщение.
type Message struct {
	MessageID int
	ChatID    int64
	// PollID заполнен, если сообщение — опрос.
	PollID string
}

// Poll описывает опрос-викторину с одним правильным вариантом.
type Poll struct {
	Question        string
	Options         []string
	CorrectOption   int
	Explanation     string
	Anonymous       bool
	MultipleAnswers bool
}

// SendOptions содержит опции отправки сообщения.
type SendOptions struct {
	ParseMode string
}

// Client определяет интерфейс Telegram клиента.
type Client interface {
	// SendMessage отправляет текстовое сообщение.
	SendMessage(chatID int64, text string, opts *SendOptions) (*Message, error)

	// SendPoll отправляет опрос-викторину.
	SendPoll(chatID int64, poll *Poll) (*Message, error)

	// SendDocument отправляет файл как документ.
	SendDocument(chatID int64, fileName string, data []byte) error

	// DownloadFile скачивает файл, но не больше limit байт.
	DownloadFile(fileID string, limit int64) ([]byte, error)
}

// ErrFileTooLarge возвращается, если файл больше допустимого размера.
var ErrFileTooLarge = errors.New("file is too large")

// Таймаут HTTP-запросов к Bot API.
const timeoutRequest = 10 * time.Second
