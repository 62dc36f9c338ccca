package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// ErrSESRegionRequired is returned when the AWS region is missing.
var ErrSESRegionRequired = errors.New("ses region is required")

type sesSender interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESConfig configures the AWS SES implementation.
type SESConfig struct {
	// Region is the AWS region hosting the SES identity.
	Region string
	// AccessKey and SecretKey are optional; the default credential chain is
	// used when either is empty.
	AccessKey string
	SecretKey string
	// From is the default sender when Message.From is empty.
	From string
}

// SES is a Mail implementation backed by Amazon SES v2 raw messages.
type SES struct {
	client      sesSender
	defaultFrom string
	boundary    func() string
}

// NewSES constructs an SES mail sender.
func NewSES(ctx context.Context, cfg SESConfig) (*SES, error) {
	if cfg.Region == "" {
		return nil, ErrSESRegionRequired
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SES{
		client:      sesv2.NewFromConfig(awsCfg),
		defaultFrom: cfg.From,
		boundary:    multipartBoundary,
	}, nil
}

// Send delivers a message through SES as a raw MIME document so attachments
// survive.
func (s *SES) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(msg.recipients()) == 0 {
		return ErrNoRecipients
	}

	from := senderOf(msg, s.defaultFrom)
	if from == "" {
		return ErrNoSender
	}

	raw, err := buildRaw(msg, from, s.boundary)
	if err != nil {
		return err
	}

	_, err = s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(formatAddress(from)),
		Destination: &types.Destination{
			ToAddresses:  addressesOf(msg.To),
			CcAddresses:  addressesOf(msg.Cc),
			BccAddresses: addressesOf(msg.Bcc),
		},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (s *SES) Close() error {
	return nil
}
