package fieldservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
)

// Client клиент JSON API маркетплейса (backend внешний, контракт фиксирован)
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
	log        Logger
}

// NewClient создает новый экземпляр клиента backend
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		validate: newValidator(),
		log:      log,
	}
}

// SignUp регистрирует нового пользователя
func (c *Client) SignUp(ctx context.Context, req *SignUpRequest) (*domain.User, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var user domain.User
	if err := c.doJSON(ctx, http.MethodPost, "/users/signup", "", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignIn выполняет вход, возвращает токен и профиль
func (c *Client) SignIn(ctx context.Context, req *SignInRequest) (*SignInResponse, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var resp SignInResponse
	if err := c.doJSON(ctx, http.MethodPost, "/users/signin", "", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: signin response without token", ErrInvalidResponse)
	}
	return &resp, nil
}

// ListFields возвращает все поля маркетплейса
func (c *Client) ListFields(ctx context.Context) ([]*domain.Field, error) {
	var payload []fieldPayload
	if err := c.doJSON(ctx, http.MethodGet, "/fields", "", nil, &payload); err != nil {
		return nil, err
	}
	return c.fieldsToDomain(payload)
}

// GetField возвращает поле по идентификатору
func (c *Client) GetField(ctx context.Context, id string) (*domain.Field, error) {
	var payload fieldPayload
	path := "/fields/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &payload); err != nil {
		return nil, err
	}
	if err := c.validateStruct(&payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// ListFieldsByCity возвращает поля указанного города
func (c *Client) ListFieldsByCity(ctx context.Context, city string) ([]*domain.Field, error) {
	var payload []fieldPayload
	path := "/sports_center/city/" + url.PathEscape(city)
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &payload); err != nil {
		return nil, err
	}
	return c.fieldsToDomain(payload)
}

// CreateField создает поле с недельным расписанием (требует авторизации)
func (c *Client) CreateField(ctx context.Context, token string, req *CreateFieldRequest) (*domain.Field, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var payload fieldPayload
	if err := c.doJSON(ctx, http.MethodPost, "/fields", token, req, &payload); err != nil {
		return nil, err
	}
	if err := c.validateStruct(&payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// CreateReservation создает бронь (требует авторизации)
func (c *Client) CreateReservation(ctx context.Context, token string, req *CreateReservationRequest) (*domain.Reservation, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var payload reservationPayload
	if err := c.doJSON(ctx, http.MethodPost, "/reservations", token, req, &payload); err != nil {
		return nil, err
	}
	if err := c.validateStruct(&payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// MyReservations возвращает брони текущего пользователя (требует авторизации)
func (c *Client) MyReservations(ctx context.Context, token string) ([]*domain.Reservation, error) {
	var payload []reservationPayload
	if err := c.doJSON(ctx, http.MethodGet, "/reservations/me", token, nil, &payload); err != nil {
		return nil, err
	}

	result := make([]*domain.Reservation, 0, len(payload))
	for i := range payload {
		if err := c.validateStruct(&payload[i]); err != nil {
			return nil, err
		}
		result = append(result, payload[i].toDomain())
	}
	return result, nil
}

// CancelReservation отменяет бронь (требует авторизации)
func (c *Client) CancelReservation(ctx context.Context, token string, id string) error {
	path := "/reservations/" + url.PathEscape(id) + "/cancel"
	return c.doJSON(ctx, http.MethodPatch, path, token, nil, nil)
}

// doJSON выполняет запрос к backend и классифицирует результат.
// Ошибка выполнения запроса — транспортная (ErrUnavailable).
// Полученный HTTP-ответ со статусом >= 400 — ошибка уровня приложения
// (APIError), пробрасывается без маскировки.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request body: %v", ErrInternal, err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: failed to decode response: %v", ErrInvalidResponse, method, path, err)
	}
	return nil
}

// decodeAPIError разбирает тело ошибки backend.
// Нечитаемое тело не превращает ошибку приложения в транспортную:
// HTTP-ответ получен, значит backend доступен.
func (c *Client) decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Detail: "request failed"}

	var payload ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}

func (c *Client) fieldsToDomain(payload []fieldPayload) ([]*domain.Field, error) {
	result := make([]*domain.Field, 0, len(payload))
	for i := range payload {
		if err := c.validateStruct(&payload[i]); err != nil {
			return nil, err
		}
		result = append(result, payload[i].toDomain())
	}
	return result, nil
}
