package sheets

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"go.uber.org/zap"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// WriteRegistrations перезаписывает лист "Регистрации"
func (c *Client) WriteRegistrations(ctx context.Context, participants []*model.Participant) error {
	sheetID, err := c.prepareSheet(ctx, SheetRegistrations)
	if err != nil {
		return err
	}

	if err := c.writeValues(ctx, SheetRegistrations, RegistrationRows(participants)); err != nil {
		return err
	}

	if err := c.batchUpdate(ctx, headerFormat(sheetID, len(registrationHeaders))); err != nil {
		return fmt.Errorf("format %s: %w", SheetRegistrations, err)
	}

	c.logger.Info("Worksheet written",
		zap.String("sheet", SheetRegistrations),
		zap.Int("rows", len(participants)))
	return nil
}

// WriteConfirmations перезаписывает лист "Подтверждения"
func (c *Client) WriteConfirmations(ctx context.Context, confirmed, declined []*model.Participant) error {
	sheetID, err := c.prepareSheet(ctx, SheetConfirmations)
	if err != nil {
		return err
	}

	if err := c.writeValues(ctx, SheetConfirmations, ConfirmationRows(confirmed, declined)); err != nil {
		return err
	}

	requests := confirmationFormat(sheetID, len(confirmed), len(declined))
	if err := c.batchUpdate(ctx, requests...); err != nil {
		return fmt.Errorf("format %s: %w", SheetConfirmations, err)
	}

	c.logger.Info("Worksheet written",
		zap.String("sheet", SheetConfirmations),
		zap.Int("confirmed", len(confirmed)),
		zap.Int("declined", len(declined)))
	return nil
}

// prepareSheet находит или создаёт лист и очищает его значения
func (c *Client) prepareSheet(ctx context.Context, title string) (int64, error) {
	sheetID, err := c.sheetID(ctx, title)
	if err != nil {
		return 0, err
	}

	_, err = c.srv.Spreadsheets.Values.Clear(c.spreadsheetID, title, &sheetsv4.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", title, err)
	}
	return sheetID, nil
}

func (c *Client) sheetID(ctx context.Context, title string) (int64, error) {
	spreadsheet, err := c.srv.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return sheet.Properties.SheetId, nil
		}
	}

	return c.addSheet(ctx, title)
}

func (c *Client) addSheet(ctx context.Context, title string) (int64, error) {
	resp, err := c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			AddSheet: &sheetsv4.AddSheetRequest{
				Properties: &sheetsv4.SheetProperties{
					Title: title,
					GridProperties: &sheetsv4.GridProperties{
						RowCount:    defaultRows,
						ColumnCount: defaultColumns,
					},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("add sheet %s: %w", title, err)
	}

	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return 0, fmt.Errorf("add sheet %s: empty reply", title)
	}

	c.logger.Info("Worksheet created", zap.String("sheet", title))
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

func (c *Client) writeValues(ctx context.Context, title string, rows [][]interface{}) error {
	vr := &sheetsv4.ValueRange{Values: rows}
	_, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, title+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", title, err)
	}
	return nil
}

func (c *Client) batchUpdate(ctx context.Context, requests ...*sheetsv4.Request) error {
	_, err := c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}
