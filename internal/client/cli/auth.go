package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mtmt/internal/client/client"
	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/server/dto"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) report(err error) error {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && len(apiErr.Fields) > 0:
		printlnFn(apiErr.Message + ":")
		for field, msg := range apiErr.Fields {
			printlnFn("  "+field+":", msg)
		}
	case errors.Is(err, common.ErrInvalidRole):
		printlnFn("Role must be 'mentor' or 'mentee'")
	default:
		printlnFn("error:", err)
	}
	return err
}

func (a *App) Login(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		return a.report(err)
	}

	a.userName = resp.UserInfo.Email
	printlnFn(fmt.Sprintf("Welcome, %s (%s)", resp.UserInfo.Name, resp.UserInfo.Role))
	return nil
}

func (a *App) SignUp(ctx context.Context) error {
	role, err := a.ask("Role (mentor/mentee)")
	if err != nil {
		return err
	}

	req, err := dto.NewSignUp(role)
	if err != nil {
		return a.report(err)
	}

	f := req.Fields()
	if f.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if f.Password, err = getPassword(a.out); err != nil {
		return err
	}
	if f.Name, err = a.ask("Name"); err != nil {
		return err
	}
	if f.Gender, err = a.ask("Gender (MALE/FEMALE)"); err != nil {
		return err
	}
	if f.BirthDate, err = a.ask("Birth date (yyyy-MM-dd)"); err != nil {
		return err
	}
	f.Gender = strings.ToUpper(f.Gender)

	switch r := req.(type) {
	case *dto.MentorSignUp:
		if r.Major, err = a.ask("Major category"); err != nil {
			return err
		}
	case *dto.MenteeSignUp:
		if r.InterestFirst, err = a.ask("First interest"); err != nil {
			return err
		}
		if r.InterestSecond, err = a.ask("Second interest"); err != nil {
			return err
		}
		if r.InterestThird, err = a.ask("Third interest"); err != nil {
			return err
		}
	}

	resp, err := a.api.SignUp(ctx, req)
	if err != nil {
		return a.report(err)
	}

	printlnFn(fmt.Sprintf("Signed up %s as %s", resp.Email, resp.Role))
	return nil
}

func (a *App) Me(ctx context.Context) error {
	me, err := a.api.Me(ctx)
	if err != nil {
		return a.report(err)
	}
	printlnFn(fmt.Sprintf("%s <%s> %s", me.Name, me.Email, strings.Join(me.Authorities, ",")))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	a.userName = ""
	if err != nil && !errors.Is(err, client.ErrNotLoggedIn) {
		return a.report(err)
	}
	printlnFn("Logged out")
	return nil
}
