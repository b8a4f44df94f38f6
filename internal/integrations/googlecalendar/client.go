package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mastercuts/BookingService/internal/domain"
	"github.com/mastercuts/BookingService/internal/infra/storage/calendartoken"
)

// Client клиент Google Calendar
// Календарь является зеркалом: ошибки клиента не должны отменять бронирование
type Client struct {
	oauth      *oauth2.Config
	store      TokenStore
	calendarID string
	endpoint   string
	timeout    time.Duration
	loc        *time.Location
	log        Logger
}

// NewClient создает новый экземпляр клиента Google Calendar
func NewClient(cfg Config, store TokenStore, log Logger) *Client {
	endpoint := google.Endpoint
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{calendar.CalendarEventsScope},
		},
		store:      store,
		calendarID: calendarID,
		endpoint:   cfg.Endpoint,
		timeout:    cfg.Timeout,
		loc:        loc,
		log:        log,
	}
}

// ListEvents возвращает события в интервале [timeMin, timeMax)
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*domain.CalendarEvent, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	var events []*domain.CalendarEvent
	err = svc.Events.List(c.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		TimeZone(c.loc.String()).
		SingleEvents(true).
		OrderBy("startTime").
		Pages(ctx, func(page *calendar.Events) error {
			for _, item := range page.Items {
				if item.Status == "cancelled" {
					continue
				}
				event, err := c.fromAPIEvent(item)
				if err != nil {
					c.log.Warn("GoogleCalendar: skipping event id=%s: %v", item.Id, err)
					continue
				}
				events = append(events, event)
			}
			return nil
		})
	if err != nil {
		return nil, c.mapError("ListEvents", err)
	}

	return events, nil
}

// CreateEvent создаёт событие и возвращает его с присвоенным ID
func (c *Client) CreateEvent(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	created, err := svc.Events.Insert(c.calendarID, &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start: &calendar.EventDateTime{
			DateTime: event.Start.In(c.loc).Format(time.RFC3339),
			TimeZone: c.loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: event.End.In(c.loc).Format(time.RFC3339),
			TimeZone: c.loc.String(),
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, c.mapError("CreateEvent", err)
	}

	result := *event
	result.ID = created.Id
	return &result, nil
}

// DeleteEvent удаляет событие. Уже удалённое событие считается успехом
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}

	err = svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		mapped := c.mapError("DeleteEvent", err)
		if errors.Is(mapped, ErrEventNotFound) {
			c.log.Info("GoogleCalendar: event id=%s already deleted", eventID)
			return nil
		}
		return mapped
	}
	return nil
}

// TokenStatus проверяет привязку календаря, при необходимости обновляя токен
func (c *Client) TokenStatus(ctx context.Context) (TokenStatus, error) {
	token, err := c.loadToken(ctx)
	switch {
	case errors.Is(err, ErrNotLinked):
		return TokenNotLinked, nil
	case errors.Is(err, ErrReauthRequired):
		return TokenReauthRequired, nil
	case err != nil:
		return "", err
	}

	if _, err := c.tokenSource(ctx, token).Token(); err != nil {
		mapped := c.mapError("TokenStatus", err)
		if errors.Is(mapped, ErrReauthRequired) {
			return TokenReauthRequired, nil
		}
		return "", mapped
	}
	return TokenValid, nil
}

// AuthCodeURL URL согласия Google с офлайн-доступом (нужен refresh token)
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange обменивает код авторизации на токен и сохраняет его
func (c *Client) Exchange(ctx context.Context, code string) error {
	token, err := c.oauth.Exchange(c.httpContext(ctx), code)
	if err != nil {
		return fmt.Errorf("%w: Exchange - %v", ErrUnavailable, err)
	}

	if err := c.store.Save(ctx, fromOAuthToken(token)); err != nil {
		return fmt.Errorf("%w: Exchange - save token: %v", ErrInternal, err)
	}

	c.log.Info("GoogleCalendar: calendar linked (refresh_token=%t)", token.RefreshToken != "")
	return nil
}

// Unlink удаляет сохранённый токен
func (c *Client) Unlink(ctx context.Context) (bool, error) {
	deleted, err := c.store.Delete(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: Unlink - %v", ErrInternal, err)
	}
	return deleted, nil
}

func (c *Client) service(ctx context.Context) (*calendar.Service, error) {
	token, err := c.loadToken(ctx)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: c.timeout,
		Transport: &oauth2.Transport{
			Source: c.tokenSource(ctx, token),
			Base:   http.DefaultTransport,
		},
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create calendar service: %v", ErrInternal, err)
	}
	return svc, nil
}

// loadToken читает токен из хранилища
// Просроченный токен без refresh token сразу означает повторную авторизацию
func (c *Client) loadToken(ctx context.Context) (*oauth2.Token, error) {
	stored, err := c.store.Get(ctx)
	if err != nil {
		if errors.Is(err, calendartoken.ErrTokenNotFound) {
			return nil, ErrNotLinked
		}
		return nil, fmt.Errorf("%w: failed to load token: %v", ErrInternal, err)
	}

	token := toOAuthToken(stored)
	if !token.Valid() && token.RefreshToken == "" {
		c.log.Warn("GoogleCalendar: access token expired and no refresh token stored")
		return nil, ErrReauthRequired
	}
	return token, nil
}

func (c *Client) tokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource {
	return &persistingTokenSource{
		ctx:   ctx,
		base:  c.oauth.TokenSource(c.httpContext(ctx), token),
		store: c.store,
		last:  token.AccessToken,
		log:   c.log,
	}
}

// httpContext передаёт oauth2 HTTP-клиент с таймаутом для обращений к token endpoint
func (c *Client) httpContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: c.timeout})
}

// mapError переводит ошибки oauth2 и Calendar API в ошибки клиента
func (c *Client) mapError(op string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.Response != nil &&
			(retrieveErr.Response.StatusCode == http.StatusBadRequest || retrieveErr.Response.StatusCode == http.StatusUnauthorized) {
			c.log.Warn("GoogleCalendar: %s - token refresh rejected: %v", op, err)
			return fmt.Errorf("%w: %s - token refresh rejected: %v", ErrReauthRequired, op, err)
		}
		return fmt.Errorf("%w: %s - token refresh failed: %v", ErrUnavailable, op, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized:
			c.log.Warn("GoogleCalendar: %s - unauthorized: %v", op, err)
			return fmt.Errorf("%w: %s - calendar rejected credentials", ErrReauthRequired, op)
		case http.StatusNotFound, http.StatusGone:
			return fmt.Errorf("%w: %s", ErrEventNotFound, op)
		default:
			return fmt.Errorf("%w: %s - unexpected status code %d: %s", ErrUnavailable, op, apiErr.Code, apiErr.Message)
		}
	}

	return fmt.Errorf("%w: %s - %v", ErrUnavailable, op, err)
}

func (c *Client) fromAPIEvent(item *calendar.Event) (*domain.CalendarEvent, error) {
	start, err := c.parseEventTime(item.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := c.parseEventTime(item.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &domain.CalendarEvent{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Start:       start,
		End:         end,
	}, nil
}

// parseEventTime поддерживает события с временем и события на весь день
func (c *Client) parseEventTime(t *calendar.EventDateTime) (time.Time, error) {
	if t == nil {
		return time.Time{}, errors.New("missing time")
	}
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		if err != nil {
			return time.Time{}, err
		}
		return parsed.In(c.loc), nil
	}
	if t.Date != "" {
		return time.ParseInLocation(domain.DateFormat, t.Date, c.loc)
	}
	return time.Time{}, errors.New("empty time")
}
