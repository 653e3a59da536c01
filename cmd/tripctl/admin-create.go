package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/tripdesk/tripdesk/pkg/authenticator/password"
	"github.com/tripdesk/tripdesk/pkg/db"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/seal"
	"github.com/tripdesk/tripdesk/pkg/server/store"
	gormstore "github.com/tripdesk/tripdesk/pkg/server/store/gorm"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

const generatedPasswordBytes = 18

// adminCreateCmd represents the admin create command
var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin user",
	Long: `Create a user with the admin role.

When --password is omitted a random password is generated and printed to
stdout. The password can also be passed in TRIPDESK_ADMIN_PASSWORD.

Example:
  tripctl admin create --email ops@example.com --name "Ops Desk"`,
	Run: func(cmd *cobra.Command, args []string) {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		pw, _ := cmd.Flags().GetString("password")
		if pw == "" {
			pw = os.Getenv("TRIPDESK_ADMIN_PASSWORD")
		}

		generated, err := createAdmin(cmd.Context(), email, name, pw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create admin %s: %v\n", email, err)
			os.Exit(1)
		}
		if generated != "" {
			fmt.Println(generated)
		}
	},
}

func init() {
	adminCmd.AddCommand(adminCreateCmd)
	adminCreateCmd.Flags().StringP("email", "e", "", "admin email address")
	adminCreateCmd.Flags().StringP("name", "n", "", "display name")
	adminCreateCmd.Flags().String("password", "", "password (generated when empty)")
	_ = adminCreateCmd.MarkFlagRequired("email")
}

// createAdmin stores the admin user and returns the generated password, if any
func createAdmin(ctx context.Context, email, name, pw string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	email = password.NormalizeEmail(email)
	if err := validation.Var("email", email, "required,email"); err != nil {
		return "", fmt.Errorf("invalid email %q", email)
	}

	var generated string
	if pw == "" {
		raw, err := seal.RandomBytes(generatedPasswordBytes)
		if err != nil {
			return "", err
		}
		pw = base64.RawURLEncoding.EncodeToString(raw)
		generated = pw
	} else if len(pw) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := password.HashPassword(pw, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}

	if name = strings.TrimSpace(name); name == "" {
		name = email
	}
	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
		Role:         model.UserRoleAdmin,
	}
	if err := gormstore.NewUsersStore(database).CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return "", fmt.Errorf("a user with this email already exists")
		}
		return "", err
	}

	fmt.Fprintf(os.Stderr, "Created admin user %d (%s)\n", user.ID, user.Email)
	return generated, nil
}
