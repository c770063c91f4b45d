package account

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/gamttori/gamttori/internal/auth"
	"github.com/gamttori/gamttori/internal/cli"
)

type LoginCmd struct {
	Email    string `arg:"" optional:"" help:"Account e-mail. Prompted when omitted."`
	Password string `env:"GAMTTORI_PASSWORD" help:"Password. Read from the terminal when omitted."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	email, err := promptIfEmpty(c.Email, "이메일: ")
	if err != nil {
		return err
	}
	password, err := secretIfEmpty(c.Password, "비밀번호: ")
	if err != nil {
		return err
	}

	sess, err := ctx.Auth.Login(context.Background(), email, password)
	if err != nil {
		return err
	}
	fmt.Printf("✓ %s님, 반가워요!\n", sess.User.Nickname)
	return nil
}

type RegisterCmd struct {
	Nickname string `arg:"" help:"Display name."`
	Email    string `arg:"" help:"Account e-mail."`
	Password string `env:"GAMTTORI_PASSWORD" help:"Password. Read from the terminal when omitted."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	form := auth.SignupForm{Nickname: c.Nickname, Email: c.Email, Password: c.Password, Confirm: c.Password}
	if form.Password == "" {
		var err error
		if form.Password, err = readSecret("비밀번호: "); err != nil {
			return err
		}
		if form.Confirm, err = readSecret("비밀번호 확인: "); err != nil {
			return err
		}
	}

	sess, err := ctx.Auth.Register(context.Background(), form)
	if stderrors.Is(err, auth.ErrAutoLoginFailed) {
		fmt.Printf("✓ %s님, 가입되었어요. gamttori login 으로 로그인해주세요.\n", sess.User.Nickname)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("✓ %s님, 가입과 로그인이 완료되었어요!\n", sess.User.Nickname)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Auth.Logout(context.Background()); err != nil {
		return err
	}
	fmt.Println("✓ 로그아웃되었어요.")
	return nil
}

type WhoamiCmd struct {
	Refresh bool `help:"Fetch the profile from the server before printing."`
}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if c.Refresh {
		if _, err := ctx.Auth.Refresh(bg); err != nil {
			return err
		}
	}
	sess, ok := ctx.Auth.Current(bg)
	if !ok {
		fmt.Println("로그인되어 있지 않아요.")
		return nil
	}
	fmt.Printf("Nickname: %s\n", sess.User.Nickname)
	fmt.Printf("Email:    %s\n", sess.User.Email)
	if sess.User.UserCode != "" {
		fmt.Printf("Code:     %s\n", sess.User.UserCode)
	}
	if !sess.ExpiresAt.IsZero() {
		fmt.Printf("Expires:  %s\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func promptIfEmpty(v, label string) (string, error) {
	if v != "" {
		return v, nil
	}
	fmt.Print(label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func secretIfEmpty(v, label string) (string, error) {
	if v != "" {
		return v, nil
	}
	return readSecret(label)
}

// readSecret reads without echo on a terminal and falls back to a plain
// line read when stdin is piped.
func readSecret(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptIfEmpty("", label)
	}
	fmt.Print(label)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}
