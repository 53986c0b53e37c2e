package leads

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/mileusna/useragent"

	"github.com/manosay/manosay/backend/go-services/internal/mailer"
	"github.com/manosay/manosay/backend/go-services/internal/models"
	"github.com/manosay/manosay/backend/go-services/pkg/logger"
	"github.com/manosay/manosay/backend/go-services/pkg/metrics"
)

// Input is a quote request as submitted.
type Input struct {
	Name     string
	Email    string
	Company  string
	Platform string
	Budget   string
	Timeline string
	Message  string
}

// Client describes where a submission came from.
type Client struct {
	IP        string
	UserAgent string
}

// Notifier schedules a notification; *mailer.Queue implements it.
type Notifier interface {
	Enqueue(m mailer.Message) error
}

// Service captures leads
type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(r Repository, n Notifier) *Service {
	return &Service{repo: r, notifier: n, now: time.Now}
}

// Capture persists the lead, then schedules the notification. A lead that
// was stored is never rolled back because the notification could not be queued.
func (s *Service) Capture(ctx context.Context, in Input, client Client) (*models.Lead, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.Invalid("name", "is required")
	}
	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, models.Invalid("email", "is not a valid address")
	}

	ua := ParseUserAgent(client.UserAgent)
	l := &models.Lead{
		Name:      name,
		Email:     email,
		Company:   strings.TrimSpace(in.Company),
		Platform:  strings.TrimSpace(in.Platform),
		Budget:    strings.TrimSpace(in.Budget),
		Timeline:  strings.TrimSpace(in.Timeline),
		Message:   strings.TrimSpace(in.Message),
		IP:        client.IP,
		UserAgent: client.UserAgent,
		Browser:   ua.Browser,
		OS:        ua.OS,
		Device:    ua.Device,
		CreatedAt: s.now().UTC(),
		Status:    models.LeadStatusNew,
	}
	if err := s.repo.Insert(ctx, l); err != nil {
		return nil, err
	}
	metrics.LeadsCaptured.Inc()
	logger.Infof("lead %s captured from %s", l.ID.Hex(), l.IP)

	if s.notifier != nil {
		if err := s.notifier.Enqueue(mailer.LeadMessage(l)); err != nil {
			logger.Warnf("lead %s stored but notification not queued: %v", l.ID.Hex(), err)
		}
	}
	return l, nil
}

// ClientInfo is the parsed form of a User-Agent header.
type ClientInfo struct {
	Browser string
	OS      string
	Device  string
}

// ParseUserAgent extracts browser, OS and device class.
func ParseUserAgent(s string) ClientInfo {
	if strings.TrimSpace(s) == "" {
		return ClientInfo{}
	}
	ua := useragent.Parse(s)
	info := ClientInfo{Browser: ua.Name, OS: ua.OS}
	if info.Browser == "" {
		info.Browser = "Unknown"
	}
	if info.OS == "" {
		info.OS = "Unknown"
	}
	switch {
	case ua.Mobile:
		info.Device = "mobile"
	case ua.Tablet:
		info.Device = "tablet"
	case ua.Bot:
		info.Device = "bot"
	default:
		info.Device = "desktop"
	}
	return info
}
