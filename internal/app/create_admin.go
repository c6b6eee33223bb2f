package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/hitoshi/valoriza/internal/auth"
	"github.com/hitoshi/valoriza/internal/config"
	"github.com/hitoshi/valoriza/internal/database"
	"github.com/hitoshi/valoriza/internal/repository"
	"github.com/hitoshi/valoriza/internal/security"
	"github.com/hitoshi/valoriza/internal/user"
)

// createAdminOptions はcreate-adminコマンドの引数。
type createAdminOptions struct {
	Email    string
	Name     string
	Password string
}

// parseCreateAdminFlags はcreate-adminコマンドのフラグを解析する。
func parseCreateAdminFlags(args []string, output io.Writer) (createAdminOptions, error) {
	var opts createAdminOptions

	fs := pflag.NewFlagSet(string(CommandCreateAdmin), pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.Email, "email", "", "管理者のメールアドレス（必須）")
	fs.StringVar(&opts.Name, "name", "Administrator", "管理者の表示名")
	fs.StringVar(&opts.Password, "password", "", "管理者のパスワード（省略時はADMIN_PASSWORDまたは端末から入力）")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if strings.TrimSpace(opts.Email) == "" {
		return opts, errors.New("--email is required")
	}
	return opts, nil
}

// passwordReader はエコーなしでパスワードを読み込む関数。
type passwordReader func(fd int) ([]byte, error)

// resolveAdminPassword はフラグ、設定（ADMIN_PASSWORD）、端末入力の順でパスワードを決定する。
func resolveAdminPassword(flagValue, configured string, in *os.File, prompt io.Writer, read passwordReader) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if configured != "" {
		return configured, nil
	}
	if in == nil || !term.IsTerminal(int(in.Fd())) {
		return "", errors.New("password is required: use --password, ADMIN_PASSWORD or run interactively")
	}

	fmt.Fprint(prompt, "Password: ")
	pw, err := read(int(in.Fd()))
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

// runCreateAdmin は管理者ユーザーを作成する。
func runCreateAdmin(cfg *config.Config, args []string, in *os.File, w io.Writer) error {
	opts, err := parseCreateAdminFlags(args, w)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	password, err := resolveAdminPassword(opts.Password, cfg.AdminPassword, in, os.Stderr, term.ReadPassword)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	svc := user.NewService(
		repository.NewPostgresUserRepo(db),
		auth.NewPasswordHasher(cfg.BcryptCost),
		security.NewTextSanitizer(),
	)

	admin, err := svc.Register(context.Background(), user.RegisterInput{
		Name:     opts.Name,
		Email:    opts.Email,
		Password: password,
		Admin:    true,
	}, true)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	slog.Info("admin user created",
		slog.String("user_id", admin.ID),
		slog.String("email", admin.Email),
	)
	return nil
}
