package service

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"testing"
	"time"

	"todoapi/internal/repository"
)

// captureMailer records the last message instead of delivering it.
type captureMailer struct {
	to   string
	body string
}

func (m *captureMailer) Send(ctx context.Context, to, subject, body string) error {
	m.to = to
	m.body = body
	return nil
}

var linkPattern = regexp.MustCompile(`https?://\S+`)

// resetCode extracts the recovery code from the mailed link.
func (m *captureMailer) resetCode(t *testing.T) string {
	t.Helper()
	link := linkPattern.FindString(m.body)
	if link == "" {
		t.Fatalf("no link in mail body:\n%s", m.body)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link %q: %v", link, err)
	}
	code := u.Query().Get("token")
	if code == "" {
		t.Fatalf("no token in link %q", link)
	}
	return code
}

func newAuthService(t *testing.T) (*AuthService, *captureMailer) {
	t.Helper()
	db := testDB(t)
	mailer := &captureMailer{}
	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewTokenRepository(db),
		mailer,
		"test-secret",
		time.Hour,
		time.Hour,
		"http://example.test",
	)
	return svc, mailer
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "  Alice@Example.test ", "hunter22")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.Email != "alice@example.test" {
		t.Errorf("email = %q, want lowercased trimmed", user.Email)
	}
	if user.PasswordHash == "hunter22" || user.PasswordHash == "" {
		t.Error("password stored unhashed")
	}

	if _, err := svc.SignIn(ctx, "alice@example.test", "hunter22"); err != nil {
		t.Errorf("SignIn: %v", err)
	}
	if _, err := svc.SignIn(ctx, "alice@example.test", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.SignIn(ctx, "nobody@example.test", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSignUp_Validation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		want     error
		wantVal  bool
	}{
		{"empty email", "", "hunter22", nil, true},
		{"no at sign", "alice.example.test", "hunter22", nil, true},
		{"short password", "alice@example.test", "abc", nil, true},
		{"duplicate email", "bob@example.test", "hunter22", ErrEmailTaken, false},
	}

	if _, err := svc.SignUp(ctx, "bob@example.test", "hunter22"); err != nil {
		t.Fatalf("seed SignUp: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, tt.email, tt.password)
			if tt.wantVal {
				if !IsValidation(err) {
					t.Errorf("err = %v, want validation error", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSessionRoundTrip(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "alice@example.test", "hunter22")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	token, err := svc.IssueSession(user)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}

	got, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("authenticated as %s, want %s", got.ID, user.ID)
	}

	if _, err := svc.Authenticate(ctx, token+"x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("tampered token: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "not-a-token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("garbage token: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestPasswordReset(t *testing.T) {
	svc, mailer := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "alice@example.test", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if err := svc.IssuePasswordReset(ctx, "alice@example.test"); err != nil {
		t.Fatalf("IssuePasswordReset: %v", err)
	}
	if mailer.to != "alice@example.test" {
		t.Fatalf("mail sent to %q", mailer.to)
	}
	code := mailer.resetCode(t)

	if err := svc.ResetPassword(ctx, code, "abc"); !IsValidation(err) {
		t.Errorf("weak password: err = %v, want validation error", err)
	}
	if err := svc.ResetPassword(ctx, "bogus-code", "newpassword"); !errors.Is(err, ErrInvalidResetCode) {
		t.Errorf("bogus code: err = %v, want ErrInvalidResetCode", err)
	}

	if err := svc.ResetPassword(ctx, code, "newpassword"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, err := svc.SignIn(ctx, "alice@example.test", "newpassword"); err != nil {
		t.Errorf("SignIn with new password: %v", err)
	}
	if _, err := svc.SignIn(ctx, "alice@example.test", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password still works: err = %v", err)
	}

	// The code is single-use.
	if err := svc.ResetPassword(ctx, code, "anotherpassword"); !errors.Is(err, ErrInvalidResetCode) {
		t.Errorf("replayed code: err = %v, want ErrInvalidResetCode", err)
	}
}

func TestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	svc, mailer := newAuthService(t)
	ctx := context.Background()

	if err := svc.IssuePasswordReset(ctx, "nobody@example.test"); err != nil {
		t.Fatalf("IssuePasswordReset: %v", err)
	}
	if mailer.to != "" {
		t.Errorf("mail sent for unknown email to %q", mailer.to)
	}
}

func TestTokenCleanup(t *testing.T) {
	db := testDB(t)
	mailer := &captureMailer{}
	tokenRepo := repository.NewTokenRepository(db)
	svc := NewAuthService(
		repository.NewUserRepository(db), tokenRepo, mailer,
		"test-secret", time.Hour,
		// Tokens expire immediately.
		time.Nanosecond,
		"http://example.test",
	)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "alice@example.test", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if err := svc.IssuePasswordReset(ctx, "alice@example.test"); err != nil {
		t.Fatalf("IssuePasswordReset: %v", err)
	}

	removed, err := tokenRepo.DeleteStale(ctx, time.Now().Add(time.Second))
	if err != nil {
		t.Fatalf("DeleteStale: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
}
