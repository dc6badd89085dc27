// Package sheets выгружает участников в Google Sheets
package sheets

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	logger        *zap.Logger
}

// New создаёт клиент по JSON-ключу сервисного аккаунта
func New(ctx context.Context, serviceAccountJSONPath, spreadsheetID string, logger *zap.Logger) (*Client, error) {
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}

	return newClient(ctx, spreadsheetID, logger,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
}

func newClient(ctx context.Context, spreadsheetID string, logger *zap.Logger, opts ...option.ClientOption) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is empty")
	}

	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{srv: srv, spreadsheetID: spreadsheetID, logger: logger}, nil
}

func (c *Client) SpreadsheetID() string { return c.spreadsheetID }

// URL - ссылка на таблицу для администратора
func (c *Client) URL() string {
	return "https://docs.google.com/spreadsheets/d/" + c.spreadsheetID
}
