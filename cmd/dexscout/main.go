package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/navid-fn/dexscout/configs"
	"github.com/navid-fn/dexscout/internal/actions"
	"github.com/navid-fn/dexscout/internal/agent"
	"github.com/navid-fn/dexscout/internal/dexscreener"
	"github.com/navid-fn/dexscout/internal/events"
	"github.com/navid-fn/dexscout/internal/server"
	"github.com/navid-fn/dexscout/internal/telegram"
)

func main() {
	cmd := &cli.Command{
		Name:  "dexscout",
		Usage: "answer natural-language questions about DEX market data",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP and WebSocket API",
				Action: runServe,
			},
			{
				Name:   "bot",
				Usage:  "run the Telegram bot",
				Action: runBot,
			},
			{
				Name:      "ask",
				Usage:     "answer one question and exit",
				ArgsUsage: `"<question>"`,
				Action:    runAsk,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles everything a subcommand needs: config, logger, the paced
// client, the dispatching agent and the optional event emitter.
type app struct {
	cfg     *configs.AppConfig
	logger  *logrus.Logger
	client  *dexscreener.Client
	agent   *agent.Agent
	emitter *events.Emitter
}

func buildApp() *app {
	cfg := configs.AppLoad()
	logger := newLogger(cfg.LogLevel)

	client := dexscreener.New(dexscreener.Config{
		BaseURL:            cfg.Dexscreener.BaseURL,
		MinRequestInterval: time.Duration(cfg.Dexscreener.MinRequestIntervalMS) * time.Millisecond,
	}, logger)

	emitter := events.New(cfg.Kafka.Broker, cfg.Kafka.Topic, logger)
	if emitter != nil {
		logger.Infof("query events enabled on %s (topic %s)", cfg.Kafka.Broker, cfg.Kafka.Topic)
	}

	ag := agent.New(actions.All(client, logger), logger, emitter)

	return &app{cfg: cfg, logger: logger, client: client, agent: ag, emitter: emitter}
}

func (a *app) close() {
	if err := a.emitter.Close(); err != nil {
		a.logger.Errorf("closing event emitter: %v", err)
	}
	a.client.Close()
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}

func runServe(ctx context.Context, _ *cli.Command) error {
	a := buildApp()
	defer a.close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(a.agent, a.logger).Run(ctx, a.cfg.Server.Addr)
}

func runBot(ctx context.Context, _ *cli.Command) error {
	a := buildApp()
	defer a.close()

	if a.cfg.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot, err := telegram.NewBot(a.cfg.Telegram.Token, a.agent, a.logger)
	if err != nil {
		return err
	}
	return bot.Run(ctx)
}

func runAsk(ctx context.Context, cmd *cli.Command) error {
	question := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("usage: dexscout ask \"<question>\"")
	}

	a := buildApp()
	defer a.close()

	reply, matched := a.agent.Dispatch(ctx, agent.Message{ID: uuid.NewString(), Text: question})
	if !matched {
		fmt.Println(a.agent.HelpText())
		return nil
	}
	fmt.Println(reply.Text)
	return nil
}
