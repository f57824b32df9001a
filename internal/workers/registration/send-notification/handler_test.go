package sendnotification

import (
	"context"
	"fmt"
	"testing"

	awsclient "ese-registration-workers/internal/common/aws"
	"ese-registration-workers/internal/common/camunda/camundatest"
	"ese-registration-workers/internal/common/errors"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/models"
	"ese-registration-workers/internal/repository"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         int
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       int
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls++
	return m.PublishFunc(ctx, params, optFns...)
}

type finderFunc func(ctx context.Context, id string) (*models.Registration, error)

func (f finderFunc) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	return f(ctx, id)
}

// ==========================
// Test Helper Functions
// ==========================

func testRegistration() *models.Registration {
	return &models.Registration{
		ID:             "reg-001",
		UID:            "ESE9876543210A",
		Category:       "Food Processing",
		FullName:       "Anas P",
		WhatsappNumber: "9876543210",
		Email:          "anas@example.in",
		Panchayath:     "Kottakkal",
		Status:         models.StatusApproved,
	}
}

func okSES() *MockSESService {
	return &MockSESService{SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		return &ses.SendEmailOutput{MessageId: awssdk.String("ses-1")}, nil
	}}
}

func okSNS() *MockSNSService {
	return &MockSNSService{PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
		return &sns.PublishOutput{MessageId: awssdk.String("sns-1")}, nil
	}}
}

func newTestHandler(t *testing.T, cfg *Config, reg *models.Registration, sesAPI *MockSESService, snsAPI *MockSNSService) *Handler {
	return NewHandler(cfg, Dependencies{
		Registrations: finderFunc(func(context.Context, string) (*models.Registration, error) {
			if reg == nil {
				return nil, repository.ErrNotFound
			}
			return reg, nil
		}),
		SMS:    awsclient.NewSNSSenderWithClient(snsAPI, "+91", "ESEREG"),
		Email:  awsclient.NewSESSenderWithClient(sesAPI, "noreply@ese.example.in"),
		Logger: logger.NewTestLogger(t),
	})
}

func enabledConfig() *Config {
	cfg := DefaultConfig()
	cfg.EmailEnabled = true
	cfg.SMSEnabled = true
	return cfg
}

// ==========================
// Core Functionality Tests
// ==========================

func TestExecute_SendsBothChannels(t *testing.T) {
	sesAPI := okSES()
	var published *sns.PublishInput
	snsAPI := &MockSNSService{PublishFunc: func(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
		published = in
		return &sns.PublishOutput{MessageId: awssdk.String("sns-1")}, nil
	}}

	h := newTestHandler(t, enabledConfig(), testRegistration(), sesAPI, snsAPI)
	out, err := h.Execute(context.Background(), &Input{
		RegistrationID:   "reg-001",
		NotificationType: models.NotificationStatusChanged,
	})

	require.NoError(t, err)
	assert.Equal(t, models.NotificationSent, out.Status)
	assert.Equal(t, []string{ChannelSMS, ChannelEmail}, out.Channels)
	assert.NotEmpty(t, out.NotificationID)
	assert.False(t, out.SentAt.IsZero())

	require.NotNil(t, published)
	assert.Equal(t, "+919876543210", awssdk.ToString(published.PhoneNumber))
	assert.Contains(t, awssdk.ToString(published.Message), "changed to Approved")
	assert.Equal(t, 1, sesAPI.calls)
}

func TestExecute_NoEmailAddressSkipsSES(t *testing.T) {
	reg := testRegistration()
	reg.Email = ""
	sesAPI := okSES()

	out, err := newTestHandler(t, enabledConfig(), reg, sesAPI, okSNS()).Execute(context.Background(), &Input{
		RegistrationID:   "reg-001",
		NotificationType: models.NotificationRegistrationSubmitted,
	})

	require.NoError(t, err)
	assert.Equal(t, models.NotificationSent, out.Status)
	assert.Equal(t, []string{ChannelSMS}, out.Channels)
	assert.Zero(t, sesAPI.calls)
}

func TestExecute_ChannelsDisabled(t *testing.T) {
	sesAPI, snsAPI := okSES(), okSNS()

	out, err := newTestHandler(t, DefaultConfig(), testRegistration(), sesAPI, snsAPI).Execute(context.Background(), &Input{
		RegistrationID:   "reg-001",
		NotificationType: models.NotificationRegistrationSubmitted,
	})

	require.NoError(t, err)
	assert.Equal(t, models.NotificationDisabled, out.Status)
	assert.Empty(t, out.Channels)
	assert.Zero(t, sesAPI.calls)
	assert.Zero(t, snsAPI.calls)
}

func TestExecute_RegistrationMissingIsDisabled(t *testing.T) {
	snsAPI := okSNS()

	out, err := newTestHandler(t, enabledConfig(), nil, okSES(), snsAPI).Execute(context.Background(), &Input{
		RegistrationID:   "missing",
		NotificationType: models.NotificationRegistrationSubmitted,
	})

	require.NoError(t, err)
	assert.Equal(t, models.NotificationDisabled, out.Status)
	assert.Zero(t, snsAPI.calls)
}

func TestExecute_DeliveryFailureIsReportedNotRetried(t *testing.T) {
	snsAPI := &MockSNSService{PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
		return nil, fmt.Errorf("throttled")
	}}

	out, err := newTestHandler(t, enabledConfig(), testRegistration(), okSES(), snsAPI).Execute(context.Background(), &Input{
		RegistrationID:   "reg-001",
		NotificationType: models.NotificationRegistrationSubmitted,
	})

	require.NoError(t, err)
	assert.Equal(t, models.NotificationFailed, out.Status)
	assert.Equal(t, []string{ChannelEmail}, out.Channels)
	assert.Equal(t, 1, snsAPI.calls)
}

func TestExecute_LookupFailure(t *testing.T) {
	h := NewHandler(enabledConfig(), Dependencies{
		Registrations: finderFunc(func(context.Context, string) (*models.Registration, error) {
			return nil, fmt.Errorf("connection refused")
		}),
		Logger: logger.NewTestLogger(t),
	})

	_, err := h.Execute(context.Background(), &Input{
		RegistrationID:   "reg-001",
		NotificationType: models.NotificationRegistrationSubmitted,
	})

	assert.Equal(t, errors.ErrCodeDatabaseQueryFailed, errors.CodeOf(err))
}

func TestRenderTemplate(t *testing.T) {
	got := renderTemplate("Hi {{fullName}}, {{uid}} is {{status}}{{missing}}.", map[string]interface{}{
		"fullName": "Anas",
		"uid":      "ESE9876543210A",
		"status":   models.StatusRejected,
	})

	assert.Equal(t, "Hi Anas, ESE9876543210A is Rejected.", got)
}

func TestHandle_RejectsUnknownType(t *testing.T) {
	client := camundatest.NewJobClient()
	h := newTestHandler(t, enabledConfig(), testRegistration(), okSES(), okSNS())

	h.Handle(client, camundatest.NewJob(31, TaskType, map[string]interface{}{
		"registrationId":   "reg-001",
		"notificationType": "welcome",
	}))

	assert.Equal(t, "VALIDATION_FAILED", client.Thrown(t).ErrorCode)
}

func TestHandle_Completes(t *testing.T) {
	client := camundatest.NewJobClient()
	h := newTestHandler(t, enabledConfig(), testRegistration(), okSES(), okSNS())

	h.Handle(client, camundatest.NewJob(32, TaskType, map[string]interface{}{
		"registrationId":   "reg-001",
		"notificationType": "registration_submitted",
	}))

	vars := client.Completed(t)
	assert.Equal(t, "sent", vars["status"])
	assert.NotEmpty(t, vars["notificationId"])
}
