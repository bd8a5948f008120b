package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"go.uber.org/zap"
)

// UserStore хранилище контактов пользователей
type UserStore interface {
	Upsert(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}

type UserService struct {
	userRepo UserStore
	logger   *zap.Logger
}

// NewUserService создаёт сервис. userRepo может быть nil, тогда контакты не сохраняются.
func NewUserService(userRepo UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterUser регистрирует или обновляет пользователя
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName, languageCode string) (*model.User, error) {
	user := &model.User{
		TelegramID:   telegramID,
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		LanguageCode: languageCode,
	}

	if s.userRepo == nil {
		return user, nil
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
	)

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID, nil если не найден
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	if s.userRepo == nil {
		return nil, nil
	}
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}
