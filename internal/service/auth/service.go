package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	"github.com/quadralivre/QL-BookingClient/internal/infra/storage/session"
	"github.com/quadralivre/QL-BookingClient/internal/infra/storage/users"
	"github.com/quadralivre/QL-BookingClient/internal/integrations/fieldservice"
)

// Префикс токена оффлайн-сессии
const offlineTokenPrefix = "offline-token-"

// Session результат входа или регистрации
type Session struct {
	User    *domain.User
	Token   string
	Offline bool // сессия создана без доступа к backend
}

// Service сервис регистрации и входа: remote-first, при недоступном
// backend аккаунты создаются и проверяются локально
type Service struct {
	api      APIClient
	users    UsersRepository
	sessions SessionRepository
	metrics  Recorder
	logger   Logger
}

// NewService создает новый экземпляр сервиса авторизации
func NewService(
	api APIClient,
	usersRepo UsersRepository,
	sessions SessionRepository,
	metrics Recorder,
	logger Logger,
) *Service {
	return &Service{
		api:      api,
		users:    usersRepo,
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
	}
}

// SignUp регистрирует пользователя. При транспортной ошибке backend
// создает оффлайн-аккаунт с bcrypt-хешем пароля.
// Оформленные ошибки backend (занятый email и т.п.) пробрасываются.
func (s *Service) SignUp(ctx context.Context, req *fieldservice.SignUpRequest) (*Session, error) {
	s.logger.Info("SignUp: email=%s", req.Email)

	created, err := s.api.SignUp(ctx, req)
	if err == nil {
		// Backend вернул профиль без токена: получаем токен обычным входом
		s.logger.Info("SignUp: registered id=%s", created.ID)
		return s.SignIn(ctx, &fieldservice.SignInRequest{Email: req.Email, Password: req.Password})
	}

	if !fieldservice.IsTransportError(err) {
		if fieldservice.IsConflict(err) {
			s.logger.Warn("SignUp: email already registered: %s", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Warn("SignUp: backend rejected signup: %v", err)
		return nil, err
	}

	s.logger.Warn("SignUp: backend unavailable, creating offline account for %s", req.Email)
	s.metrics.IncFallback("signup")

	return s.signUpOffline(req)
}

func (s *Service) signUpOffline(req *fieldservice.SignUpRequest) (*Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash password: %v", ErrInternal, err)
	}

	offlineUser := &domain.OfflineUser{
		ID:           "offline-" + uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		CPF:          req.CPF,
		PasswordHash: string(hash),
	}

	if err := s.users.Append(offlineUser); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: failed to store offline user: %v", ErrInternal, err)
	}

	user := &domain.User{
		ID:    offlineUser.ID,
		Name:  offlineUser.Name,
		Email: offlineUser.Email,
	}
	token := offlineTokenPrefix + offlineUser.ID

	if err := s.sessions.Save(token, user); err != nil {
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	s.metrics.IncLocal("signup")
	s.logger.Info("SignUp: offline account created id=%s", offlineUser.ID)
	return &Session{User: user, Token: token, Offline: true}, nil
}

// SignIn выполняет вход. При транспортной ошибке backend проверяет
// пароль против локального оффлайн-аккаунта.
func (s *Service) SignIn(ctx context.Context, req *fieldservice.SignInRequest) (*Session, error) {
	s.logger.Info("SignIn: email=%s", req.Email)

	resp, err := s.api.SignIn(ctx, req)
	if err == nil {
		if err := s.sessions.Save(resp.Token, &resp.User); err != nil {
			return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
		}
		s.logger.Info("SignIn: authenticated remotely id=%s", resp.User.ID)
		return &Session{User: &resp.User, Token: resp.Token}, nil
	}

	if !fieldservice.IsTransportError(err) {
		if fieldservice.IsAuthError(err) {
			s.logger.Warn("SignIn: backend rejected credentials for %s", req.Email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	s.logger.Warn("SignIn: backend unavailable, trying offline account for %s", req.Email)
	s.metrics.IncFallback("signin")

	return s.signInOffline(req)
}

func (s *Service) signInOffline(req *fieldservice.SignInRequest) (*Session, error) {
	offlineUser, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: failed to load offline user: %v", ErrInternal, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(offlineUser.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	user := &domain.User{
		ID:     offlineUser.ID,
		Name:   offlineUser.Name,
		Email:  offlineUser.Email,
		Phone:  offlineUser.Phone,
		Avatar: offlineUser.Avatar,
	}
	token := offlineTokenPrefix + offlineUser.ID

	if err := s.sessions.Save(token, user); err != nil {
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	s.metrics.IncLocal("signin")
	s.logger.Info("SignIn: authenticated offline id=%s", offlineUser.ID)
	return &Session{User: user, Token: token, Offline: true}, nil
}

// Logout удаляет текущую сессию
func (s *Service) Logout() error {
	if err := s.sessions.Clear(); err != nil {
		return fmt.Errorf("%w: failed to clear session: %v", ErrInternal, err)
	}
	return nil
}

// CurrentUser возвращает профиль текущей сессии
func (s *Service) CurrentUser() (*domain.User, error) {
	user, err := s.sessions.User()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("%w: failed to load session user: %v", ErrInternal, err)
	}
	return user, nil
}

// Token возвращает токен активной сессии.
// JWT-токены backend проверяются на истечение по claim exp (без проверки
// подписи: ключа у клиента нет, подпись проверяет backend).
// Оффлайн-токены не истекают.
func (s *Service) Token(now time.Time) (string, error) {
	token, err := s.sessions.Token()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return "", ErrNotAuthenticated
		}
		return "", fmt.Errorf("%w: failed to load token: %v", ErrInternal, err)
	}

	if strings.HasPrefix(token, offlineTokenPrefix) {
		return token, nil
	}

	if expired := jwtExpired(token, now); expired {
		s.logger.Warn("Token: session token expired")
		return "", ErrNotAuthenticated
	}
	return token, nil
}

// jwtExpired возвращает true только для валидного JWT с истёкшим exp.
// Токены неизвестного формата считаются живыми: решает backend.
func jwtExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
