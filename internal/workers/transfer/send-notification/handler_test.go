// internal/workers/transfer/send-notification/handler_test.go
package sendnotification

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kingdom-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
)

type fakeSES struct {
	sent     []*ses.SendEmailInput
	err      error
	subjects []string
}

func (f *fakeSES) SendEmail(_ context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, input)
	if input.Message != nil && input.Message.Subject != nil && input.Message.Subject.Data != nil {
		f.subjects = append(f.subjects, *input.Message.Subject.Data)
	}
	return &ses.SendEmailOutput{}, nil
}

type fakeSNS struct {
	published []*sns.PublishInput
	err       error
}

func (f *fakeSNS) Publish(_ context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.published = append(f.published, input)
	return &sns.PublishOutput{}, nil
}

func createTestConfig() *Config {
	return &Config{
		EmailEnabled: true,
		SMSEnabled:   true,
		FromEmail:    "noreply@kingdomhub.example",
		AWSRegion:    "us-east-1",
		Timeout:      30 * time.Second,
	}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	return db, mock
}

func newTestHandler(t *testing.T, cfg *Config, db *sql.DB, sesSvc SESService, snsSvc SNSService) *Handler {
	templates, err := loadTemplates("")
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}
	return &Handler{
		config:      cfg,
		db:          db,
		logger:      logger.NewTestLogger(t),
		sesClient:   sesSvc,
		snsClient:   snsSvc,
		templateMap: templates,
	}
}

func expectPlayerContact(mock sqlmock.Sqlmock, id, email, phone string) {
	mock.ExpectQuery("SELECT email, phone FROM players").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"email", "phone"}).AddRow(email, phone))
}

func TestLoadTemplates_Defaults(t *testing.T) {
	templates, err := loadTemplates("")

	assert.NoError(t, err)
	assert.Contains(t, templates, TypeMatchFound)
	assert.Contains(t, templates, TypeApplicationCreated)
	assert.Contains(t, templates, TypeApplicationStatus)
}

func TestLoadTemplates_FromRegistryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notification-templates.json")
	content := `{
		"match_found": {
			"subject": "A kingdom wants you",
			"body": "Listing {{listingId}} scored {{matchScore}} against your profile."
		}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write template registry: %v", err)
	}

	templates, err := loadTemplates(path)

	assert.NoError(t, err)
	assert.Equal(t, "A kingdom wants you", templates[TypeMatchFound]["subject"])
	assert.NotContains(t, templates, TypeApplicationStatus)
}

func TestLoadTemplates_RegistryErrors(t *testing.T) {
	_, err := loadTemplates(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"match_found": {"subject": "no body"}}`), 0o644); err != nil {
		t.Fatalf("failed to write template registry: %v", err)
	}
	_, err = loadTemplates(path)
	assert.ErrorContains(t, err, "missing body")
}

func TestHandler_Execute_SendsEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	sesSvc := &fakeSES{}
	snsSvc := &fakeSNS{}

	expectPlayerContact(mock, "player-1", "arya@example.com", "")

	handler := newTestHandler(t, createTestConfig(), db, sesSvc, snsSvc)

	output, err := handler.Execute(context.Background(), &Input{
		RecipientID:      "player-1",
		RecipientType:    RecipientTypePlayer,
		NotificationType: TypeMatchFound,
		ListingID:        "listing-9",
		Metadata:         map[string]interface{}{"matchScore": 86},
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Len(t, sesSvc.sent, 1)
	assert.Empty(t, snsSvc.published)
	assert.Equal(t, "New Kingdom Match Found", sesSvc.subjects[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_HighPrioritySendsSMS(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	sesSvc := &fakeSES{}
	snsSvc := &fakeSNS{}

	expectPlayerContact(mock, "player-1", "arya@example.com", "+15550001111")

	handler := newTestHandler(t, createTestConfig(), db, sesSvc, snsSvc)

	output, err := handler.Execute(context.Background(), &Input{
		RecipientID:      "player-1",
		RecipientType:    RecipientTypePlayer,
		NotificationType: TypeApplicationStatus,
		ApplicationID:    "app-7",
		Priority:         "high",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Len(t, sesSvc.sent, 1)
	assert.Len(t, snsSvc.published, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_NormalPrioritySkipsSMS(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	sesSvc := &fakeSES{}
	snsSvc := &fakeSNS{}

	expectPlayerContact(mock, "player-1", "arya@example.com", "+15550001111")

	handler := newTestHandler(t, createTestConfig(), db, sesSvc, snsSvc)

	output, err := handler.Execute(context.Background(), &Input{
		RecipientID:      "player-1",
		RecipientType:    RecipientTypePlayer,
		NotificationType: TypeApplicationCreated,
		Priority:         "normal",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Empty(t, snsSvc.published)
}

func TestHandler_Execute_KingdomRecipient(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	sesSvc := &fakeSES{}
	snsSvc := &fakeSNS{}

	mock.ExpectQuery("SELECT email, phone FROM kingdom_contacts").
		WithArgs("listing-9").
		WillReturnRows(sqlmock.NewRows([]string{"email", "phone"}).AddRow("r5@kd1829.example", ""))

	handler := newTestHandler(t, createTestConfig(), db, sesSvc, snsSvc)

	output, err := handler.Execute(context.Background(), &Input{
		RecipientID:      "listing-9",
		RecipientType:    RecipientTypeKingdom,
		NotificationType: TypeApplicationCreated,
		ApplicationID:    "app-7",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_RecipientNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT email, phone FROM players").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	handler := newTestHandler(t, createTestConfig(), db, &fakeSES{}, &fakeSNS{})

	output, err := handler.Execute(context.Background(), &Input{
		RecipientID:      "ghost",
		RecipientType:    RecipientTypePlayer,
		NotificationType: TypeMatchFound,
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
}

func TestHandler_Execute_TemplateNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	expectPlayerContact(mock, "player-1", "arya@example.com", "")

	handler := newTestHandler(t, createTestConfig(), db, &fakeSES{}, &fakeSNS{})

	output, err := handler.Execute(context.Background(), &Input{
		RecipientID:      "player-1",
		RecipientType:    RecipientTypePlayer,
		NotificationType: "unknown_type",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
}

func TestHandler_Execute_EmailFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	expectPlayerContact(mock, "player-1", "arya@example.com", "")

	handler := newTestHandler(t, createTestConfig(), db, &fakeSES{err: errors.New("throttled")}, &fakeSNS{})

	output, err := handler.Execute(context.Background(), &Input{
		RecipientID:      "player-1",
		RecipientType:    RecipientTypePlayer,
		NotificationType: TypeMatchFound,
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusFailed, output.Status)
}

func TestHandler_Execute_AllChannelsDisabled(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	expectPlayerContact(mock, "player-1", "arya@example.com", "+15550001111")

	cfg := createTestConfig()
	cfg.EmailEnabled = false
	cfg.SMSEnabled = false

	handler := newTestHandler(t, cfg, db, &fakeSES{}, &fakeSNS{})

	output, err := handler.Execute(context.Background(), &Input{
		RecipientID:      "player-1",
		RecipientType:    RecipientTypePlayer,
		NotificationType: TypeMatchFound,
		Priority:         "high",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
}

func TestRenderTemplate(t *testing.T) {
	out := renderTemplate("App {{applicationId}} is {{status}}{{missing}}.", map[string]interface{}{
		"applicationId": "app-1",
		"status":        "accepted",
	})
	assert.Equal(t, "App app-1 is accepted.", out)
}
