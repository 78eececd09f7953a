package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/emotai/clients/api"
	"github.com/dohr-michael/emotai/internal/sessions"
)

// NewForgetCommand returns the forget subcommand.
func NewForgetCommand() *cli.Command {
	return &cli.Command{
		Name:  "forget",
		Usage: "Delete everything the service stored for this session",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			f := forgetter{client: e.client, jar: e.jar}
			if err := f.DeleteUserData(ctx); err != nil {
				return err
			}
			fmt.Fprintln(e.out, "All your data has been deleted.")
			return nil
		},
	}
}

// forgetter erases the service's data and then the persisted session.
type forgetter struct {
	client *api.Client
	jar    *sessions.FileJar
}

func (f forgetter) DeleteUserData(ctx context.Context) error {
	if err := f.client.DeleteUserData(ctx); err != nil {
		return fmt.Errorf("delete user data: %w", err)
	}
	if f.jar == nil {
		return nil
	}
	return f.jar.Clear()
}
