package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailMailer sends through the Gmail API as the account that authorised the token.
type GmailMailer struct {
	svc  *gmail.Service
	from string
}

// NewGmailMailer loads the OAuth client secret and a previously saved token.
// The token must already exist; the server never runs an interactive consent flow.
func NewGmailMailer(ctx context.Context, credentialsFile, tokenFile, from string) (*GmailMailer, error) {
	b, err := os.ReadFile(credentialsFile) // #nosec G304: path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read gmail credentials: %w", err)
	}
	cfg, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("parse gmail credentials: %w", err)
	}
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read gmail token: %w", err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return &GmailMailer{svc: svc, from: from}, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path) // #nosec G304: path comes from configuration
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func (m *GmailMailer) Send(ctx context.Context, msg Message) error {
	raw, err := buildMIME(m.from, msg, time.Now())
	if err != nil {
		return err
	}
	_, err = m.svc.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	return nil
}
