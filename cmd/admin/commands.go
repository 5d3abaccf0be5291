package main

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/api/dto"
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/database"
	"Inkpost/internal/pkg/security"
	"Inkpost/internal/repository"
	"Inkpost/internal/service"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configDir string

func getDB() (*gorm.DB, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, err
	}
	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

// newUserService CLI 不签发 Token，TokenManager 仅为满足依赖
func newUserService(db *gorm.DB) service.UserService {
	return service.NewUserService(
		repository.NewUserRepo(db),
		security.NewTokenManager("cli", time.Minute, "inkpost-admin"),
		security.NewMemoryBlacklist(),
	)
}

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := getDB()
			if err != nil {
				return err
			}
			if err = database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migration completed.")
			return nil
		},
	}
}

func PromoteCmd() *cobra.Command {
	return adminFlagCmd("promote", "Grant admin rights to a user", true)
}

func DemoteCmd() *cobra.Command {
	return adminFlagCmd("demote", "Revoke admin rights from a user", false)
}

func adminFlagCmd(use, short string, isAdmin bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")

			db, err := getDB()
			if err != nil {
				return err
			}
			if err = newUserService(db).SetAdmin(cmd.Context(), email, isAdmin); err != nil {
				return fmt.Errorf("failed to %s %s: %w", use, email, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s is_admin=%t\n", email, isAdmin)
			return nil
		},
	}
	cmd.Flags().String("email", "", "email of the user")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func WhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show a stored user",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")

			db, err := getDB()
			if err != nil {
				return err
			}
			user, err := newUserService(db).GetUserByEmail(cmd.Context(), email)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
	cmd.Flags().String("email", "", "email of the user")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func printUser(w io.Writer, user *dto.UserDTO) {
	var posts, comments int64
	if user.PostsCount != nil {
		posts = *user.PostsCount
	}
	if user.CommentsCount != nil {
		comments = *user.CommentsCount
	}
	fmt.Fprintf(w, "ID:        %d\n", user.ID)
	fmt.Fprintf(w, "Name:      %s\n", user.Name)
	fmt.Fprintf(w, "Email:     %s\n", user.Email)
	fmt.Fprintf(w, "Admin:     %t\n", user.IsAdmin)
	fmt.Fprintf(w, "Posts:     %d\n", posts)
	fmt.Fprintf(w, "Comments:  %d\n", comments)
	fmt.Fprintf(w, "Created:   %s\n", user.CreatedAt.Format(consts.TimeLayout))
}
