package client

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

type fakeBot struct {
	sent    []interface{}
	to      []tele.Recipient
	sendErr error
	file    []byte
	fileErr error
}

func (f *fakeBot) Send(to tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}

	f.to = append(f.to, to)
	f.sent = append(f.sent, what)

	msg := &tele.Message{ID: len(f.sent), Chat: &tele.Chat{ID: 42}}
	if _, ok := what.(*tele.Poll); ok {
		msg.Poll = &tele.Poll{ID: "poll-1"}
	}

	return msg, nil
}

func (f *fakeBot) File(_ *tele.File) (io.ReadCloser, error) {
	if f.fileErr != nil {
		return nil, f.fileErr
	}

	return io.NopCloser(bytes.NewReader(f.file)), nil
}

func TestTelebotClient_SendPoll(t *testing.T) {
	bot := &fakeBot{}
	c := NewTelebotClient(bot)

	msg, err := c.SendPoll(42, &Poll{
		Question:      "2+2?",
		Options:       []string{"3", "4"},
		CorrectOption: 1,
		Explanation:   "math",
	})
	require.NoError(t, err)

	assert.Equal(t, "poll-1", msg.PollID)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "42", bot.to[0].Recipient())

	poll, ok := bot.sent[0].(*tele.Poll)
	require.True(t, ok)
	assert.Equal(t, tele.PollQuiz, poll.Type)
	assert.Equal(t, "2+2?", poll.Question)
	assert.Equal(t, 1, poll.CorrectOption)
	assert.Equal(t, "math", poll.Explanation)
	assert.False(t, poll.Anonymous)
	assert.False(t, poll.MultipleAnswers)
	require.Len(t, poll.Options, 2)
	assert.Equal(t, "4", poll.Options[1].Text)
}

func TestTelebotClient_SendErrors(t *testing.T) {
	bot := &fakeBot{sendErr: errors.New("boom")}
	c := NewTelebotClient(bot)

	_, err := c.SendMessage(1, "hi", nil)
	assert.Error(t, err)

	_, err = c.SendPoll(1, &Poll{Question: "q", Options: []string{"a", "b"}})
	assert.Error(t, err)

	assert.Error(t, c.SendDocument(1, "quiz.txt", []byte("x")))
}

func TestTelebotClient_SendDocument(t *testing.T) {
	bot := &fakeBot{}
	c := NewTelebotClient(bot)

	require.NoError(t, c.SendDocument(7, "quiz.txt", []byte("Q: x")))

	doc, ok := bot.sent[0].(*tele.Document)
	require.True(t, ok)
	assert.Equal(t, "quiz.txt", doc.FileName)
}

func TestTelebotClient_DownloadFile(t *testing.T) {
	bot := &fakeBot{file: []byte("0123456789")}
	c := NewTelebotClient(bot)

	data, err := c.DownloadFile("id", 10)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))

	_, err = c.DownloadFile("id", 9)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	bot.fileErr = errors.New("not found")
	_, err = c.DownloadFile("id", 10)
	assert.Error(t, err)
}
