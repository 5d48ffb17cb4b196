package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytq/internal/models"
	"github.com/desertthunder/ytq/internal/shared"
	"github.com/urfave/cli/v3"
)

// UserCreate creates an account and prints the API key clients send as a bearer token.
func (r *Runner) UserCreate(ctx context.Context, cmd *cli.Command) error {
	username := strings.TrimSpace(cmd.StringArg("username"))
	if username == "" {
		return fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}

	users, err := r.users()
	if err != nil {
		return err
	}

	user := models.NewUser(0, username)
	if err := users.Create(user); err != nil {
		return err
	}

	r.logger.Info("user created", "username", user.Username(), "id", user.ID())
	r.writePlain("✓ User created: %s\n", user.Username())
	r.writePlain("  ID:      %s\n", user.ID())
	r.writePlain("  API key: %s\n", user.APIKey())
	return nil
}

// UserShow prints one account.
func (r *Runner) UserShow(ctx context.Context, cmd *cli.Command) error {
	user, err := r.lookupUser(cmd.StringArg("username"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(user.Account(), true)
	}

	r.writePlainHeader(user.Username())
	r.writePlain("ID:         %s\n", user.ID())
	r.writePlain("Subscribed: %t\n", user.Subscribed())
	r.writePlain("Created:    %s\n", user.CreatedAt().Format("2006-01-02 15:04:05"))
	r.writePlain("API key:    %s\n", user.APIKey())
	return nil
}

// UserSubscribe marks an account as subscribed.
func (r *Runner) UserSubscribe(ctx context.Context, cmd *cli.Command) error {
	user, err := r.lookupUser(cmd.StringArg("username"))
	if err != nil {
		return err
	}

	return r.updateUser(user, func(u *models.User) {
		u.SetSubscribed(true)
	}, "✓ %s is subscribed\n")
}

// UserRename changes an account's username.
func (r *Runner) UserRename(ctx context.Context, cmd *cli.Command) error {
	newName := strings.TrimSpace(cmd.StringArg("new"))
	if newName == "" {
		return fmt.Errorf("%w: new username", shared.ErrMissingArgument)
	}

	user, err := r.lookupUser(cmd.StringArg("old"))
	if err != nil {
		return err
	}

	return r.updateUser(user, func(u *models.User) {
		u.SetUsername(newName)
	}, "✓ Renamed to %s\n")
}

// UserRotateKey replaces an account's API key.
func (r *Runner) UserRotateKey(ctx context.Context, cmd *cli.Command) error {
	user, err := r.lookupUser(cmd.StringArg("username"))
	if err != nil {
		return err
	}

	if err := r.updateUser(user, func(u *models.User) {
		u.SetAPIKey(shared.GenerateAPIKey())
	}, "✓ New API key issued for %s\n"); err != nil {
		return err
	}
	r.writePlain("  API key: %s\n", user.APIKey())
	return nil
}

func (r *Runner) lookupUser(username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}

	users, err := r.users()
	if err != nil {
		return nil, err
	}
	return users.GetByUsername(username)
}

func (r *Runner) updateUser(user *models.User, apply func(*models.User), done string) error {
	users, err := r.users()
	if err != nil {
		return err
	}

	apply(user)
	if err := users.Update(user); err != nil {
		return err
	}

	r.logger.Debug("user updated", "id", user.ID())
	return r.writePlain(done, user.Username())
}
