package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DriverSMTP selects the net/smtp backend.
	DriverSMTP = "smtp"
	// DriverPostmark selects the Postmark backend.
	DriverPostmark = "postmark"
	// DriverSES selects the Amazon SES backend.
	DriverSES = "ses"
)

// ErrUnknownDriver indicates an unsupported mail driver.
var ErrUnknownDriver = errors.New("mail: unknown driver")

// FactoryOptions groups config for supported mail backends.
type FactoryOptions struct {
	// SMTP provides configuration for the SMTP driver.
	SMTP SMTPConfig
	// Postmark provides configuration for the Postmark driver.
	Postmark PostmarkConfig
	// SES provides configuration for the SES driver.
	SES SESConfig
}

// NewFromDriver constructs a Mail implementation by driver name. An empty
// driver selects SMTP.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Mail, error) {
	var (
		m   Mail
		err error
	)

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSMTP, "":
		m, err = NewSMTP(opts.SMTP)
	case DriverPostmark:
		m, err = NewPostmark(opts.Postmark)
	case DriverSES:
		m, err = NewSES(ctx, opts.SES)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
	if err != nil {
		return nil, err
	}

	return m, nil
}
