package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/letsssgooo/mcqPollBot/internal/auth"
	"github.com/letsssgooo/mcqPollBot/internal/client"
	"github.com/letsssgooo/mcqPollBot/internal/events/sender"
	"github.com/letsssgooo/mcqPollBot/internal/mcq"
	"github.com/letsssgooo/mcqPollBot/internal/quiz"
	"github.com/letsssgooo/mcqPollBot/internal/storage"
)

// Deps — зависимости бота.
type Deps struct {
	Client  client.Client
	Sender  sender.Dispatcher
	Bank    *quiz.Bank
	Tracker *quiz.Tracker
	Storage storage.Storage
	Admins  *auth.Admins
	Parser  *mcq.Parser
	// MaxUpload — максимальный размер загружаемого файла в байтах.
	MaxUpload int64
	Log       *slog.Logger
}

// Bot реализует Telegram бота, превращающего вопросы в опросы-викторины.
type Bot struct {
	tb        *tele.Bot
	client    client.Client
	sender    sender.Dispatcher
	bank      *quiz.Bank
	tracker   *quiz.Tracker
	storage   storage.Storage
	admins    *auth.Admins
	parser    *mcq.Parser
	maxUpload int64
	log       *slog.Logger

	mu  sync.RWMutex
	ctx context.Context
}

// NewBot создаёт нового бота и регистрирует обработчики в tb.
// tb может быть nil, тогда бот не получает обновлений, но его обработчики можно вызывать.
func NewBot(tb *tele.Bot, deps Deps) *Bot {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	if deps.Parser == nil {
		deps.Parser = mcq.NewParser()
	}
	if deps.Admins == nil {
		deps.Admins = auth.NewAdmins()
	}
	if deps.Tracker == nil {
		deps.Tracker = quiz.NewTracker()
	}

	b := &Bot{
		tb:        tb,
		client:    deps.Client,
		sender:    deps.Sender,
		bank:      deps.Bank,
		tracker:   deps.Tracker,
		storage:   deps.Storage,
		admins:    deps.Admins,
		parser:    deps.Parser,
		maxUpload: deps.MaxUpload,
		log:       deps.Log,
		ctx:       context.Background(),
	}

	if tb != nil {
		b.register(tb)
	}

	return b
}

func (b *Bot) register(tb *tele.Bot) {
	tb.Use(Recover(b.log), Logger(b.log))

	tb.Handle("/start", b.wrap(b.handleHelp))
	tb.Handle("/help", b.wrap(b.handleHelp))
	tb.Handle("/quiz", b.wrap(b.handleQuiz))
	tb.Handle("/reload", b.wrap(b.handleReload), AdminOnly(b.admins, b.wrap(b.handleForbidden)))
	tb.Handle("/sets", b.wrap(b.handleSets))
	tb.Handle("/play", b.wrap(b.handlePlay))
	tb.Handle("/delete", b.wrap(b.handleDelete))
	tb.Handle("/export", b.wrap(b.handleExport))
	tb.Handle("/score", b.wrap(b.handleScore))
	tb.Handle("/top", b.wrap(b.handleTop))
	tb.Handle(tele.OnDocument, b.onDocument)
	tb.Handle(tele.OnText, b.wrap(b.handleText))
	tb.Handle(tele.OnPollAnswer, b.onPollAnswer)
}

// Run запускает получение обновлений и останавливает бота после отмены ctx.
func (b *Bot) Run(ctx context.Context) error {
	if b.tb == nil {
		return errors.New("telegram bot is not configured")
	}

	b.mu.Lock()
	b.ctx = ctx
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.tb.Start()
	}()

	b.log.Info("bot started", slog.String("username", b.tb.Me.Username))

	<-ctx.Done()
	b.tb.Stop()
	<-done

	b.log.Info("bot stopped")

	return nil
}

func (b *Bot) context() context.Context {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.ctx
}

// request — данные входящего сообщения, нужные обработчикам.
type request struct {
	chatID  int64
	user    quiz.Participant
	text    string
	args    []string
	private bool
}

func requestFrom(c tele.Context) request {
	req := request{text: c.Text(), args: c.Args()}

	if chat := c.Chat(); chat != nil {
		req.chatID = chat.ID
		req.private = chat.Type == tele.ChatPrivate
	}
	if u := c.Sender(); u != nil {
		req.user = participantFrom(u)
	}

	return req
}

func participantFrom(u *tele.User) quiz.Participant {
	return quiz.Participant{
		TelegramID: u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
	}
}

func (b *Bot) wrap(h func(ctx context.Context, req request) error) tele.HandlerFunc {
	return func(c tele.Context) error {
		return h(b.context(), requestFrom(c))
	}
}

func (b *Bot) reply(chatID int64, text string) error {
	_, err := b.sender.Message(chatID, text, nil)
	return err
}

func (b *Bot) replyLines(chatID int64, lines ...string) error {
	return b.reply(chatID, strings.Join(lines, "\n"))
}
