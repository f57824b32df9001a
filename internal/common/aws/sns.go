package aws

import (
	"context"
	"fmt"
	"strings"

	"ese-registration-workers/internal/common/validation"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SNSSender struct {
	client      SNSAPI
	countryCode string
	senderID    string
}

func NewSNSSender(cfg awssdk.Config, countryCode, senderID string) *SNSSender {
	return NewSNSSenderWithClient(sns.NewFromConfig(cfg), countryCode, senderID)
}

func NewSNSSenderWithClient(client SNSAPI, countryCode, senderID string) *SNSSender {
	return &SNSSender{client: client, countryCode: countryCode, senderID: senderID}
}

// SendSMS publishes a transactional SMS and returns the SNS message id.
func (s *SNSSender) SendSMS(ctx context.Context, phone, message string) (string, error) {
	number, err := ToE164(s.countryCode, phone)
	if err != nil {
		return "", err
	}

	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {DataType: awssdk.String("String"), StringValue: awssdk.String("Transactional")},
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{
			DataType:    awssdk.String("String"),
			StringValue: awssdk.String(s.senderID),
		}
	}

	out, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       awssdk.String(number),
		Message:           awssdk.String(message),
		MessageAttributes: attrs,
	})
	if err != nil {
		return "", fmt.Errorf("sns publish: %w", err)
	}
	return awssdk.ToString(out.MessageId), nil
}

// ToE164 formats a 10 digit national number, or one already carrying the
// country code, as +<cc><number>.
func ToE164(countryCode, phone string) (string, error) {
	cc := validation.DigitsOnly(countryCode)
	digits := validation.DigitsOnly(phone)

	switch {
	case len(digits) == 10:
		return "+" + cc + digits, nil
	case len(digits) == len(cc)+10 && strings.HasPrefix(digits, cc):
		return "+" + digits, nil
	}
	return "", fmt.Errorf("cannot format %q as E.164 with country code %q", phone, countryCode)
}
