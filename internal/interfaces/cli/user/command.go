package user

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"coursekit/internal/application/admin/dto"
	"coursekit/internal/application/admin/usecases"
	"coursekit/internal/infrastructure/auth"
	"coursekit/internal/infrastructure/config"
	"coursekit/internal/infrastructure/database"
	"coursekit/internal/infrastructure/repository"
	"coursekit/internal/shared/logger"
	"coursekit/internal/shared/utils"
)

var (
	env   string
	email string
	name  string
	role  string
)

// NewCommand returns the user management command. Its main job is bootstrapping
// the first admin account, since the back-office HTTP routes require an
// existing admin session.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User management tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newCreateCommand())

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Long:  `Create a user account directly in the database. Admin accounts are prompted for a password.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", "student", "Role (admin or student)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	req := dto.CreateUserRequest{
		Email: strings.TrimSpace(email),
		Name:  strings.TrimSpace(name),
		Role:  role,
	}

	if role == "admin" {
		password, err := promptPassword()
		if err != nil {
			return err
		}
		req.Password = password
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return err
	}

	log := logger.NewLogger()
	userRepo := repository.NewUserRepository(database.Get(), log.Named("repo.user"))
	hasher := auth.NewBcryptHasher(cfg.Auth.Password.BcryptCost)

	u, err := usecases.NewCreateUserUseCase(userRepo, hasher, log.Named("cli.user")).Execute(cmd.Context(), req)
	if err != nil {
		return err
	}

	logger.Info("user created", "user_id", u.ID, "email", u.Email, "role", u.Role)
	return nil
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	return string(password), nil
}
