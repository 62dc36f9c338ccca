package mailinglist

import (
	"context"
	"strings"
	"time"

	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
	"github.com/shandysiswandi/mailinglist/internal/mailinglist/inbound"
	"github.com/shandysiswandi/mailinglist/internal/mailinglist/outbound/db"
	"github.com/shandysiswandi/mailinglist/internal/mailinglist/outbound/email"
	"github.com/shandysiswandi/mailinglist/internal/mailinglist/outbound/memory"
	"github.com/shandysiswandi/mailinglist/internal/mailinglist/usecase"
	"github.com/shandysiswandi/mailinglist/internal/pkg/clock"
	"github.com/shandysiswandi/mailinglist/internal/pkg/config"
	"github.com/shandysiswandi/mailinglist/internal/pkg/idempotency"
	"github.com/shandysiswandi/mailinglist/internal/pkg/instrument"
	"github.com/shandysiswandi/mailinglist/internal/pkg/mail"
	"github.com/shandysiswandi/mailinglist/internal/pkg/router"
	"github.com/shandysiswandi/mailinglist/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	idempotencyLock = time.Minute
	idempotencyTTL  = 24 * time.Hour
)

type Dependency struct {
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`

	// MongoDB selects the document store; nil keeps subscribers in memory.
	MongoDB *mongo.Database
	// Idempotency enables the Idempotency-Key header on registration.
	Idempotency idempotency.Idempotency
}

type repository interface {
	usecase.UserRepository
	Ping(ctx context.Context) error
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	var repo repository = memory.NewUserRepository(nil)
	if dep.MongoDB != nil {
		repo = db.NewDB(dep.MongoDB, dep.Config.GetString("database.mongodb.collection"), dep.Clock, dep.Instrument)
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:       repo,
		RepoMail:     email.New(dep.Mail, dep.Instrument),
		EmailOptions: emailOptions(dep.Config),
		Instrument:   dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Validator, repo.Ping,
		router.Idempotent(dep.Idempotency, idempotencyLock, idempotencyTTL))

	return nil
}

// emailOptions builds the welcome email template. mail.attachments holds
// entries formatted as <path>:<content type>.
func emailOptions(cfg config.Config) entity.EmailOptions {
	var atts []entity.Attachment
	for _, raw := range cfg.GetArray("mail.attachments") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		path, contentType, _ := strings.Cut(raw, ":")
		atts = append(atts, entity.Attachment{
			Filename:    strings.TrimSpace(path),
			ContentType: strings.TrimSpace(contentType),
		})
	}

	return entity.EmailOptions{
		Host:        cfg.GetString("mail.host"),
		Port:        cfg.GetInt("mail.port"),
		Username:    cfg.GetString("mail.username"),
		Password:    cfg.GetString("mail.password"),
		From:        cfg.GetString("mail.from"),
		Subject:     cfg.GetString("mail.subject"),
		Text:        cfg.GetString("mail.text"),
		HTML:        cfg.GetString("mail.html"),
		Attachments: atts,
	}
}
