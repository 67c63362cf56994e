package auth

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/repository"
	"github.com/garrettladley/synthonia/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type recordingMailer struct {
	mu    sync.Mutex
	sent  map[string]string
	calls int
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, email, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sent == nil {
		m.sent = make(map[string]string)
	}
	m.sent[email] = link
	m.calls++
	return nil
}

func newTestService(t *testing.T) (*Password, *repository.Repository, *recordingMailer) {
	t.Helper()

	repo := repository.NewMemory()
	backend := storage.NewMemoryBackend(100, 100)
	t.Cleanup(func() { _ = backend.Close() })
	mailer := &recordingMailer{}

	svc, err := NewPassword(repo.Users, backend, backend, mailer, Config{
		SessionTTL: time.Hour,
		ResetTTL:   time.Hour,
		ResetURL:   "https://app.example/reset",
		BcryptCost: bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("NewPassword() error = %v", err)
	}
	return svc, repo, mailer
}

func TestSignUpAndSignIn(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	ctx := t.Context()

	sess, err := svc.SignUp(ctx, SignUpRequest{
		Email:    "  Ana@Example.com ",
		Password: "correct horse",
		FullName: "Ana",
	})
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if sess.Token == "" || sess.UserID == "" {
		t.Fatalf("SignUp() returned empty session %+v", sess)
	}

	profile, err := repo.Users.GetProfile(ctx, sess.UserID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if profile.Role != analytics.RoleSubject {
		t.Errorf("default role = %q, want subject", profile.Role)
	}

	userID, err := svc.Authenticate(ctx, sess.Token)
	if err != nil || userID != sess.UserID {
		t.Errorf("Authenticate() = %q, %v; want %q", userID, err, sess.UserID)
	}

	if _, err := svc.SignUp(ctx, SignUpRequest{Email: "ana@example.com", Password: "another one"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate SignUp() error = %v, want ErrEmailTaken", err)
	}

	if _, err := svc.SignIn(ctx, SignInRequest{Email: "ANA@example.com", Password: "correct horse"}); err != nil {
		t.Errorf("SignIn() error = %v", err)
	}
}

func TestSignInGenericFailure(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := t.Context()

	if _, err := svc.SignUp(ctx, SignUpRequest{Email: "ana@example.com", Password: "correct horse"}); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	tests := []struct {
		name string
		req  SignInRequest
	}{
		{name: "wrong password", req: SignInRequest{Email: "ana@example.com", Password: "wrong horse"}},
		{name: "unknown email", req: SignInRequest{Email: "bob@example.com", Password: "correct horse"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := svc.SignIn(ctx, tt.req); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("SignIn() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestSignOut(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := t.Context()

	sess, err := svc.SignUp(ctx, SignUpRequest{Email: "ana@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if err := svc.SignOut(ctx, sess.Token); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if _, err := svc.Authenticate(ctx, sess.Token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Authenticate() after SignOut error = %v, want ErrInvalidSession", err)
	}
	if _, err := svc.Authenticate(ctx, ""); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Authenticate(\"\") error = %v, want ErrInvalidSession", err)
	}
}

func TestPasswordReset(t *testing.T) {
	t.Parallel()

	svc, _, mailer := newTestService(t)
	ctx := t.Context()

	before, err := svc.SignUp(ctx, SignUpRequest{Email: "ana@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	if err := svc.RequestPasswordReset(ctx, "nobody@example.com"); err != nil {
		t.Errorf("RequestPasswordReset(unknown) error = %v, want nil", err)
	}
	if mailer.calls != 0 {
		t.Errorf("mailer called %d times for an unknown email", mailer.calls)
	}

	if err := svc.RequestPasswordReset(ctx, "Ana@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset() error = %v", err)
	}
	link, ok := mailer.sent["ana@example.com"]
	if !ok {
		t.Fatal("no reset link sent")
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("reset link %q: %v", link, err)
	}
	if u.Host != "app.example" || u.Path != "/reset" {
		t.Errorf("reset link = %q, want https://app.example/reset?token=...", link)
	}
	token := u.Query().Get("token")

	if err := svc.ConfirmPasswordReset(ctx, token, "battery staple"); err != nil {
		t.Fatalf("ConfirmPasswordReset() error = %v", err)
	}
	if err := svc.ConfirmPasswordReset(ctx, token, "reused token"); !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("reused ConfirmPasswordReset() error = %v, want ErrInvalidResetToken", err)
	}
	if _, err := svc.Authenticate(ctx, before.Token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Authenticate(pre-reset session) error = %v, want ErrInvalidSession", err)
	}

	if _, err := svc.SignIn(ctx, SignInRequest{Email: "ana@example.com", Password: "correct horse"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("SignIn(old password) error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.SignIn(ctx, SignInRequest{Email: "ana@example.com", Password: "battery staple"}); err != nil {
		t.Errorf("SignIn(new password) error = %v", err)
	}
}
