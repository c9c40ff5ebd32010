package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/smartbrain/internal/client/api"
	"github.com/dmitrijs2005/smartbrain/internal/shared"
)

var errNotSignedIn = errors.New("not signed in")

func (a *App) report(err error) error {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(a.out, "Error: %s\n", apiErr.Message)
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Error: server unavailable")
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
	return err
}

func (a *App) printProfile(p *api.Profile) {
	fmt.Fprintf(a.out, "#%d %s <%s>, entries: %d, joined %s\n",
		p.ID, p.Name, p.Email, p.Entries, p.Joined.Format("2006-01-02"))
}

func (a *App) Status(ctx context.Context) error {
	s, err := a.api.Status(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, s)
	return nil
}

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "-Enter email", a.out)
	if err != nil {
		return a.report(err)
	}
	name, err := GetSimpleText(a.reader, "-Enter name", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return a.report(err)
	}
	defer shared.WipeByteArray(password)

	p, err := a.api.Register(ctx, email, name, string(password))
	if err != nil {
		return a.report(err)
	}

	a.profile = p
	fmt.Fprintf(a.out, "Registered, welcome %s!\n", p.Name)
	return nil
}

func (a *App) SignIn(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "-Enter email", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return a.report(err)
	}
	defer shared.WipeByteArray(password)

	p, err := a.api.SignIn(ctx, email, string(password))
	if err != nil {
		return a.report(err)
	}

	a.profile = p
	fmt.Fprintf(a.out, "Welcome back, %s! Entries: %d\n", p.Name, p.Entries)
	return nil
}

// Profile refreshes and prints the signed-in profile.
func (a *App) Profile(ctx context.Context) error {
	if !a.isSignedIn() {
		return a.report(errNotSignedIn)
	}

	p, err := a.api.Profile(ctx, a.profile.ID)
	if err != nil {
		return a.report(err)
	}

	a.profile = p
	a.printProfile(p)
	return nil
}

// Detect runs face detection on imageURL, prints the boxes found and bumps
// the entry counter.
func (a *App) Detect(ctx context.Context, imageURL string) error {
	if !a.isSignedIn() {
		return a.report(errNotSignedIn)
	}

	raw, err := a.api.Detect(ctx, imageURL)
	if err != nil {
		return a.report(err)
	}

	boxes, err := api.FaceBoxes(raw)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Faces found: %d\n", len(boxes))
	for i, b := range boxes {
		fmt.Fprintf(a.out, "  %d: top=%.3f left=%.3f bottom=%.3f right=%.3f\n",
			i+1, b.TopRow, b.LeftCol, b.BottomRow, b.RightCol)
	}

	n, err := a.api.IncrementEntries(ctx, a.profile.ID)
	if err != nil {
		return a.report(err)
	}

	a.profile.Entries = n
	fmt.Fprintf(a.out, "%s, your entry count is %d\n", a.profile.Name, n)
	return nil
}

func (a *App) SignOut(ctx context.Context) error {
	a.profile = nil
	fmt.Fprintln(a.out, "Signed out")
	return nil
}
