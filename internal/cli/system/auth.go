package system

import (
	"github.com/julianstephens/daymood/internal/cli"
	"github.com/julianstephens/daymood/internal/identity"
)

// SigninCmd remembers the user id in the OS keyring
type SigninCmd struct {
	UserID string `arg:"" help:"User id to sign in as."`
}

func (cmd *SigninCmd) Run(ctx *cli.Context) error {
	if err := identity.SignIn(ctx.IdentityStore(), cmd.UserID); err != nil {
		return err
	}
	ctx.Printf("✓ Signed in as %s\n", cmd.UserID)
	return nil
}

// SignoutCmd forgets the signed-in user
type SignoutCmd struct{}

func (cmd *SignoutCmd) Run(ctx *cli.Context) error {
	if err := identity.SignOut(ctx.IdentityStore()); err != nil {
		return err
	}
	ctx.Println("✓ Signed out")
	return nil
}

// WhoamiCmd shows which user commands act for and where that came from
type WhoamiCmd struct{}

func (cmd *WhoamiCmd) Run(ctx *cli.Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}
	if id.Status != identity.StatusSignedIn {
		ctx.Println(id.Status.String())
		return nil
	}
	ctx.Printf("%s (from %s)\n", id.UserID, id.Source)
	return nil
}
