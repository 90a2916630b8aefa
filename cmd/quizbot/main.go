package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	tele "gopkg.in/telebot.v4"

	"github.com/letsssgooo/mcqPollBot/internal/auth"
	"github.com/letsssgooo/mcqPollBot/internal/bot"
	"github.com/letsssgooo/mcqPollBot/internal/client"
	"github.com/letsssgooo/mcqPollBot/internal/config"
	"github.com/letsssgooo/mcqPollBot/internal/events/fetcher"
	"github.com/letsssgooo/mcqPollBot/internal/events/sender"
	"github.com/letsssgooo/mcqPollBot/internal/httpserver"
	"github.com/letsssgooo/mcqPollBot/internal/lib/slogcustom"
	"github.com/letsssgooo/mcqPollBot/internal/mcq"
	"github.com/letsssgooo/mcqPollBot/internal/quiz"
	"github.com/letsssgooo/mcqPollBot/internal/storage"
)

func main() {
	flagConfig := pflag.StringP("config", "c", "", "path to YAML config")
	flagToken := pflag.String("token", "", "token of telegram bot")
	flagMode := pflag.String("mode", "", "update mode: polling or webhook")
	flagQuestions := pflag.String("questions", "", "path to the default questions file")
	flagDebug := pflag.Bool("debug", false, "enable debug logging")
	pflag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	if *flagToken != "" {
		cfg.Telegram.Token = *flagToken
	}
	if *flagMode != "" {
		cfg.Telegram.Mode = *flagMode
	}
	if *flagQuestions != "" {
		cfg.Questions.File = *flagQuestions
	}
	if *flagDebug {
		cfg.Debug = true
	}

	log := setupLogger(cfg)
	slog.SetDefault(log)

	if err = cfg.Validate(); err != nil {
		log.Error("invalid config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting quiz bot...", slog.String("mode", cfg.Telegram.Mode), slog.String("storage", cfg.Storage.Type))

	if err = run(ctx, cfg, log); err != nil {
		log.Error("quiz bot stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}

	defer func() {
		_ = store.Close()
	}()

	var parserOpts []mcq.Option
	if cfg.Questions.Strict {
		parserOpts = append(parserOpts, mcq.WithStrictAnswers())
	}
	parser := mcq.NewParser(parserOpts...)

	bank := quiz.NewBank(cfg.Questions.File, parser)
	if report, err := bank.Reload(); err != nil {
		log.Warn("default questions are not loaded", slog.String("error", err.Error()))
	} else {
		log.Info("default questions loaded",
			slog.String("file", cfg.Questions.File),
			slog.Int("questions", len(report.Records)),
			slog.Int("dropped", report.Dropped),
			slog.Int("defaulted", report.Defaulted),
		)
	}

	poller, err := fetcher.NewPoller(cfg.Telegram)
	if err != nil {
		return err
	}

	tb, err := client.NewBot(cfg.Telegram.Token, poller, func(err error, c tele.Context) {
		attrs := []any{slog.String("error", err.Error())}
		if c != nil && c.Sender() != nil {
			attrs = append(attrs, slog.Int64("user_id", c.Sender().ID))
		}
		log.Error("telegram error", attrs...)
	})
	if err != nil {
		return err
	}

	tgClient := client.NewTelebotClient(tb)

	b := bot.NewBot(tb, bot.Deps{
		Client:    tgClient,
		Sender:    sender.NewSender(tgClient, log.With(slog.String("component", "sender"))),
		Bank:      bank,
		Tracker:   quiz.NewTracker(),
		Storage:   store,
		Admins:    auth.NewAdmins(cfg.AdminIDs...),
		Parser:    parser,
		MaxUpload: cfg.Questions.MaxUploadBytes,
		Log:       log.With(slog.String("component", "bot")),
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return b.Run(ctx)
	})

	if cfg.Health.Addr != "" {
		health := httpserver.New(cfg.Health.Addr, map[string]httpserver.Check{
			"storage": store.Ping,
		}, log.With(slog.String("component", "health")))

		g.Go(func() error {
			return health.Run(ctx)
		})
	}

	return g.Wait()
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}

	if cfg.Log.Color {
		return slog.New(slogcustom.NewCustomHandler(os.Stdout, level))
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
