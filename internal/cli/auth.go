package cli

import (
	"context"
	"fmt"
)

func (a *App) runLogin(ctx context.Context) error {
	email, err := promptLine(a.reader, "Email: ", a.out)
	if err != nil {
		return err
	}
	password, err := promptPassword(a.out, "Password: ")
	if err != nil {
		return err
	}

	identity, err := a.session.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "signed in as %s (%s)\n", identity.Email, identity.Role)
	return nil
}

func (a *App) runRegister(ctx context.Context) error {
	email, err := promptLine(a.reader, "Email: ", a.out)
	if err != nil {
		return err
	}
	password, err := promptPassword(a.out, "Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword(a.out, "Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	identity, err := a.session.Register(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "registered %s as %s\n", identity.Email, identity.Role)
	return nil
}

func (a *App) runLogout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		// Local state is already cleared; the provider failure is still
		// worth surfacing.
		return err
	}
	fmt.Fprintln(a.out, "signed out")
	return nil
}

func (a *App) runWhoami() error {
	snap := a.session.Current()
	switch {
	case snap.Loading:
		fmt.Fprintln(a.out, "session loading")
	case snap.Identity == nil:
		fmt.Fprintln(a.out, "signed out")
	default:
		fmt.Fprintf(a.out, "%s (%s), since %s\n",
			snap.Identity.Email, snap.Identity.Role,
			snap.Identity.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
