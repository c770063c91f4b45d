// Package auth handles login, signup and the locally held session. The bearer
// token lives in the OS keyring; the user profile is cached in the store.
package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gamttori/gamttori/internal/api"
	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/errors"
	"github.com/gamttori/gamttori/internal/keyring"
	"github.com/gamttori/gamttori/internal/logger"
	"github.com/gamttori/gamttori/internal/models"
	"github.com/gamttori/gamttori/internal/storage"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// ErrAutoLoginFailed means the account was created but the follow-up
	// login did not go through.
	ErrAutoLoginFailed = stderrors.New("가입은 완료되었지만 자동 로그인에 실패했습니다. 다시 로그인해 주세요.")
)

const minPasswordLen = 6

type Remote interface {
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
	Register(ctx context.Context, email, password, nickname string) (models.User, error)
	Profile(ctx context.Context) (models.User, error)
}

type TokenStore interface {
	GetToken() (string, error)
	SetToken(token string) error
	DeleteToken() error
}

// KeyringTokens keeps the token in the OS keyring.
type KeyringTokens struct{}

func (KeyringTokens) GetToken() (string, error) {
	tok, err := keyring.GetToken()
	if stderrors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return tok, err
}

func (KeyringTokens) SetToken(token string) error { return keyring.SetToken(token) }
func (KeyringTokens) DeleteToken() error          { return keyring.DeleteToken() }

// JoinDates records the first-use date after a successful login.
type JoinDates interface {
	EnsureJoinDate(ctx context.Context, now time.Time) (time.Time, error)
}

type Service struct {
	remote Remote
	tokens TokenStore
	kv     storage.KV
	joins  JoinDates
	now    func() time.Time
}

func NewService(remote Remote, tokens TokenStore, kv storage.KV, joins JoinDates) *Service {
	return &Service{remote: remote, tokens: tokens, kv: kv, joins: joins, now: time.Now}
}

type SignupForm struct {
	Nickname string
	Email    string
	Password string
	Confirm  string
}

func ValidateSignup(f SignupForm) error {
	if f.Nickname == "" || f.Email == "" || f.Password == "" || f.Confirm == "" {
		return errors.NewValidation("", "모든 항목을 입력해주세요.")
	}
	if !emailPattern.MatchString(f.Email) {
		return errors.NewValidation("", "이메일 형식을 확인해주세요.")
	}
	if len([]rune(f.Password)) < minPasswordLen {
		return errors.NewValidation("", "비밀번호는 6자 이상이어야 합니다.")
	}
	if f.Password != f.Confirm {
		return errors.NewValidation("", "비밀번호가 일치하지 않습니다.")
	}
	return nil
}

func (s *Service) Login(ctx context.Context, email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Session{}, errors.NewValidation("", "이메일과 비밀번호를 입력해주세요.")
	}
	res, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return models.Session{}, friendly(err)
	}
	if err := s.tokens.SetToken(res.Token); err != nil {
		return models.Session{}, fmt.Errorf("saving token: %w", err)
	}
	if err := storage.SetJSON(ctx, s.kv, constants.KeyUserInfo, res.User); err != nil {
		logger.Component("auth").Warn("caching user info", "error", err)
	}
	if s.joins != nil {
		if _, err := s.joins.EnsureJoinDate(ctx, s.now()); err != nil {
			logger.Component("auth").Warn("join date not written", "error", err)
		}
	}
	exp, _ := ExpiresAt(res.Token)
	return models.Session{User: res.User, ExpiresAt: exp}, nil
}

// Register creates the account and logs straight in. If only the login
// half fails, the created user is returned with ErrAutoLoginFailed.
func (s *Service) Register(ctx context.Context, f SignupForm) (models.Session, error) {
	if err := ValidateSignup(f); err != nil {
		return models.Session{}, err
	}
	user, err := s.remote.Register(ctx, strings.TrimSpace(f.Email), f.Password, f.Nickname)
	if err != nil {
		return models.Session{}, friendly(err)
	}
	sess, err := s.Login(ctx, f.Email, f.Password)
	if err != nil {
		logger.Component("auth").Warn("auto login after signup failed", "error", err)
		return models.Session{User: user}, ErrAutoLoginFailed
	}
	return sess, nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.tokens.DeleteToken(); err != nil {
		return err
	}
	if err := s.kv.Delete(ctx, constants.KeyUserInfo); err != nil {
		return &errors.StorageError{Op: "delete", Key: constants.KeyUserInfo, Err: err}
	}
	return nil
}

// Token returns the stored token, or "" when absent or expired.
func (s *Service) Token() (string, error) {
	tok, err := s.tokens.GetToken()
	if err != nil || tok == "" {
		return "", err
	}
	if exp, ok := ExpiresAt(tok); ok && !exp.After(s.now()) {
		return "", nil
	}
	return tok, nil
}

// Current reports the cached session. An expired token counts as logged out.
func (s *Service) Current(ctx context.Context) (models.Session, bool) {
	tok, err := s.Token()
	if err != nil {
		logger.Component("auth").Warn("reading token", "error", err)
		return models.Session{}, false
	}
	if tok == "" {
		return models.Session{}, false
	}
	user, _, err := storage.GetJSON[models.User](ctx, s.kv, constants.KeyUserInfo)
	if err != nil {
		logger.Component("auth").Warn("corrupt user info", "error", err)
	}
	exp, _ := ExpiresAt(tok)
	return models.Session{User: user, ExpiresAt: exp}, true
}

// CurrentUser is Current narrowed to sessions that know the user id.
func (s *Service) CurrentUser(ctx context.Context) (models.User, bool) {
	sess, ok := s.Current(ctx)
	if !ok || sess.User.UserID == "" {
		return models.User{}, false
	}
	return sess.User, true
}

func (s *Service) LoggedIn(ctx context.Context) bool {
	_, ok := s.Current(ctx)
	return ok
}

// Refresh re-reads the profile from the server and updates the cache.
func (s *Service) Refresh(ctx context.Context) (models.User, error) {
	user, err := s.remote.Profile(ctx)
	if err != nil {
		return models.User{}, err
	}
	if err := storage.SetJSON(ctx, s.kv, constants.KeyUserInfo, user); err != nil {
		return user, &errors.StorageError{Op: "set", Key: constants.KeyUserInfo, Err: err}
	}
	return user, nil
}

// ExpiresAt reads the exp claim without verifying the signature; the server
// is the one that checks tokens. Opaque tokens report ok=false.
func ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

var serverMessages = map[string]string{
	"Invalid email or password":       "이메일 또는 비밀번호가 올바르지 않습니다.",
	"Email already exists":            "이미 가입된 이메일입니다. 로그인을 시도해주세요.",
	"Email and password are required": "이메일과 비밀번호를 모두 입력해주세요.",
}

// friendly rewrites known server rejections into the app's wording.
func friendly(err error) error {
	v, ok := errors.AsValidation(err)
	if !ok {
		return err
	}
	for en, ko := range serverMessages {
		if strings.Contains(v.Message, en) {
			return errors.NewValidation(v.Field, ko)
		}
	}
	return err
}
