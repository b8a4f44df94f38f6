package googlecalendar

import (
	"context"
	"sync"

	"golang.org/x/oauth2"

	"github.com/mastercuts/BookingService/internal/domain"
)

// persistingTokenSource сохраняет обновлённый access token обратно в хранилище
type persistingTokenSource struct {
	ctx   context.Context
	base  oauth2.TokenSource
	store TokenStore
	log   Logger

	mu   sync.Mutex
	last string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token.AccessToken != s.last {
		if err := s.store.Save(s.ctx, fromOAuthToken(token)); err != nil {
			// токен рабочий, запрос можно продолжать
			s.log.Error("GoogleCalendar: failed to persist refreshed token: %v", err)
		} else {
			s.log.Info("GoogleCalendar: access token refreshed")
		}
		s.last = token.AccessToken
	}

	return token, nil
}

func toOAuthToken(t *domain.CalendarToken) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}

func fromOAuthToken(t *oauth2.Token) *domain.CalendarToken {
	return &domain.CalendarToken{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}
