package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"crowdpay/internal/infra"
	"crowdpay/internal/sqlinline"
)

const (
	ProviderBlink = "blink"
)

// Store reads and writes provider API credentials kept in the database, so a
// deployment can rotate keys without restarting the binaries.
type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

func (s *Store) BlinkAPIKey(ctx context.Context) (string, error) {
	return s.Token(ctx, ProviderBlink)
}

func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

func (s *Store) SetBlinkAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("blink api key is required")
	}
	return s.upsert(ctx, ProviderBlink, key, nil)
}

func (s *Store) upsert(ctx context.Context, provider, token string, props map[string]any) error {
	payload := props
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, provider, token, raw)
	return err
}
