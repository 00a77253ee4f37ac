package repository

import (
	"context"
	"sync"
	"time"

	"captiveportal/generator"
	"captiveportal/models"
	"captiveportal/store"

	"github.com/sirupsen/logrus"
)

// AccessLogFilter narrows an access log list. "all" is a wildcard for the
// string fields.
type AccessLogFilter struct {
	LocationID string
	Event      string
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
}

type AccessLogRepository struct {
	mu     sync.Mutex
	col    *Collection[[]models.AccessLog]
	gen    *generator.Generator
	factor int
	logger *logrus.Entry
}

func NewAccessLogRepository(s store.Store, gen *generator.Generator, factor int, logger *logrus.Entry) *AccessLogRepository {
	return &AccessLogRepository{
		col:    NewCollection[[]models.AccessLog](s, store.AccessLogs, logger),
		gen:    gen,
		factor: factor,
		logger: logger,
	}
}

// All returns every log, newest first. When nothing is stored yet and
// contacts exist, logs are generated for those contacts and saved.
func (r *AccessLogRepository) All(ctx context.Context, contacts []models.Contact) ([]models.AccessLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx, contacts)
}

func (r *AccessLogRepository) load(ctx context.Context, contacts []models.Contact) ([]models.AccessLog, error) {
	logs, found, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		return logs, nil
	}
	if len(contacts) == 0 {
		return []models.AccessLog{}, nil
	}

	logs = r.gen.AccessLogs(contacts, r.factor)
	if err := r.col.Save(ctx, logs); err != nil {
		return nil, err
	}
	r.logger.WithField("count", len(logs)).Info("Seeded access logs")
	return logs, nil
}

// Append stores log at the head of the list
func (r *AccessLogRepository) Append(ctx context.Context, contacts []models.Contact, log models.AccessLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logs, err := r.load(ctx, contacts)
	if err != nil {
		return err
	}
	return r.col.Save(ctx, append([]models.AccessLog{log}, logs...))
}

func (r *AccessLogRepository) Filter(ctx context.Context, contacts []models.Contact, f AccessLogFilter) ([]models.AccessLog, error) {
	logs, err := r.All(ctx, contacts)
	if err != nil {
		return nil, err
	}
	return FilterAccessLogs(logs, f), nil
}

// ByContact returns the logs of one contact, newest first
func (r *AccessLogRepository) ByContact(ctx context.Context, contacts []models.Contact, contactID string) ([]models.AccessLog, error) {
	logs, err := r.All(ctx, contacts)
	if err != nil {
		return nil, err
	}

	out := []models.AccessLog{}
	for _, l := range logs {
		if l.ContactID == contactID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *AccessLogRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.col.Clear(ctx)
}

func FilterAccessLogs(logs []models.AccessLog, f AccessLogFilter) []models.AccessLog {
	out := make([]models.AccessLog, 0, len(logs))
	for _, l := range logs {
		if !matches(f.LocationID, l.LocationID) || !matches(f.Event, l.Event) || !matches(f.Status, l.Status) {
			continue
		}
		if f.DateFrom != nil && l.Timestamp.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && l.Timestamp.After(*f.DateTo) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func matches(want, got string) bool {
	return want == "" || want == "all" || want == got
}
