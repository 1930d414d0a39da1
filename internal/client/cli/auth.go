package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/evercare/planhub/internal/client/api"
	"github.com/evercare/planhub/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in. The password byte slice is
// wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s (%s)\n", user.Email, user.UserType)
	return nil
}

// Register prompts for account details and creates an account.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	userType, err := getSimpleText(a.reader, "Account type (client/provider/coordinator)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Register(ctx, api.RegisterRequest{
		Email:    email,
		Name:     name,
		UserType: userType,
		Password: string(password),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Account created for %s\n", user.Email)
	return nil
}

// AcceptInvite validates an invitation token, then completes the signup.
func (a *App) AcceptInvite(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter invitation token", os.Stdout)
	if err != nil {
		return err
	}

	inv, err := a.queries.ValidateInvitation(ctx, token)
	if err != nil {
		return err
	}
	fmt.Printf("Invitation for %s as %s (expires %s)\n", inv.Email, inv.Role, inv.ExpiresAt.Format("2006-01-02"))

	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.AcceptInvitation(ctx, api.AcceptInvitationRequest{
		Token:    token,
		Name:     name,
		Password: string(password),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %s!\n", user.Name)
	return nil
}

// Whoami prints the current session's user.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> type=%s id=%s\n", user.Name, user.Email, user.UserType, user.ID)
	return nil
}

// Refresh exchanges the stored refresh token for a new access token when the
// current one is expired or about to expire; a fresh token is left alone.
func (a *App) Refresh(ctx context.Context) error {
	refreshed, err := a.auth.RefreshIfNeeded(ctx)
	if err != nil {
		return err
	}
	if !refreshed {
		fmt.Println("Access token still fresh, nothing to do")
		return nil
	}
	fmt.Println("Access token refreshed")
	return nil
}

// Logout revokes the session and clears local state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}
