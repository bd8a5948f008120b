package controller

import (
	"context"

	"github.com/Freeeeeet/afterschool_planner/internal/checkout"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/handlers"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/state"
	"github.com/Freeeeeet/afterschool_planner/internal/metrics"
	"github.com/Freeeeeet/afterschool_planner/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Options настройки контроллера бота
type Options struct {
	Center  string
	DevMode bool
	// Reload перезагрузка каталога по команде /reload
	Reload func(ctx context.Context) error
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	devMode         bool
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	plannerService *service.PlannerService,
	userService *service.UserService,
	checkoutService *checkout.Service,
	sessions *state.Manager,
	m *metrics.Metrics,
	opts Options,
	logger *zap.Logger,
) *BotController {
	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		plannerService,
		userService,
		checkoutService,
		sessions,
		m,
		opts.Center,
		opts.DevMode,
		opts.Reload,
		logger,
	)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		plannerService,
		checkoutService,
		sessions,
		m,
		opts.Center,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		devMode:         opts.DevMode,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/plan", bot.MatchTypeExact, c.handlers.HandlePlan)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cart", bot.MatchTypeExact, c.handlers.HandleCart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reset", bot.MatchTypeExact, c.handlers.HandleReset)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/requests", bot.MatchTypeExact, c.handlers.HandleRequests)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)

	// Служебные команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addbatch", bot.MatchTypeExact, c.handlers.HandleAddBatch)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reload", bot.MatchTypeExact, c.handlers.HandleReload)

	// Обработчик остальных текстовых сообщений
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: Commands(c.devMode),
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Commands меню команд бота
func Commands(devMode bool) []models.BotCommand {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Welcome and discount tiers"},
		{Command: "plan", Description: "📅 Weekly planner"},
		{Command: "cart", Description: "🛒 Review and confirm your plan"},
		{Command: "reset", Description: "🔄 Start over"},
		{Command: "requests", Description: "📋 My requests"},
		{Command: "help", Description: "❓ Help"},
	}
	if devMode {
		commands = append(commands,
			models.BotCommand{Command: "addbatch", Description: "➕ Add a sample batch (dev)"},
			models.BotCommand{Command: "reload", Description: "♻️ Reload catalog (dev)"},
		)
	}
	return commands
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
