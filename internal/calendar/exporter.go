// Package calendar exports planner tasks as Google Calendar events. Export
// is optional enrichment: when anything here fails the task mutation has
// already succeeded, so errors are for logging only.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/config"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
)

// Exporter inserts and deletes events in one Google calendar.
type Exporter struct {
	srv        *calendar.Service
	calendarID string
	logger     *zap.Logger
}

// NewExporter builds an exporter from a downloaded credentials file and a
// previously obtained token file. The interactive consent flow is out of
// scope here; the token must already exist.
func NewExporter(ctx context.Context, cfg config.CalendarConfig, logger *zap.Logger) (*Exporter, error) {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", cfg.CredentialsFile, err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}

	tok, err := tokenFromFile(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("unable to load oauth token: %w", err)
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Calendar client: %w", err)
	}

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	return &Exporter{srv: srv, calendarID: calendarID, logger: logger}, nil
}

// Export creates a calendar event spanning the task's scheduled slot and
// returns the external event id to store on the task.
func (e *Exporter) Export(task model.Task) (string, error) {
	start, err := task.StartsAt(time.Local)
	if err != nil {
		return "", fmt.Errorf("resolve task start: %w", err)
	}
	end := start.Add(time.Duration(task.Duration) * time.Minute)

	event := &calendar.Event{
		Summary:     task.Title,
		Description: task.Description,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: time.Local.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: time.Local.String(),
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{"planner_task_id": task.ID},
		},
	}

	created, err := e.srv.Events.Insert(e.calendarID, event).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}

	e.logger.Info("Task exported to calendar",
		zap.String("task_id", task.ID),
		zap.String("event_id", created.Id),
	)
	return created.Id, nil
}

// Delete removes a previously exported event.
func (e *Exporter) Delete(eventID string) error {
	if err := e.srv.Events.Delete(e.calendarID, eventID).Do(); err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	return nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", file, err)
	}
	return tok, nil
}
