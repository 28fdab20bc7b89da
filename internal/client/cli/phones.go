package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/tijarah/internal/client/access"
	"github.com/dmitrijs2005/tijarah/internal/client/services"
)

// Phones manages the signed-in user's phone numbers. Without arguments it
// lists them; add <number> [primary], primary <phone-id> and delete
// <phone-id> change them and list the result.
func (a *App) Phones(ctx context.Context, args []string) error {
	a.navigate(access.RouteProfile)

	if len(args) > 0 {
		if err := a.changePhones(ctx, args); err != nil {
			return err
		}
		a.session.Reload(ctx)
	}

	list, err := a.auth.Phones(ctx)
	if err != nil {
		return err
	}
	if len(list.PhoneNumbers) == 0 {
		a.printf("No phone numbers yet. 'phones add <number>' adds one.\n")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNUMBER\t")
	for _, p := range list.PhoneNumbers {
		if p.IsDeleted {
			continue
		}
		mark := ""
		if p.IsPrimary {
			mark = "primary"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.PhoneID, p.PhoneNumber, mark)
	}
	return tw.Flush()
}

func (a *App) changePhones(ctx context.Context, args []string) error {
	switch strings.ToLower(args[0]) {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("%w: usage: phones add <number> [primary]", services.ErrInvalidInput)
		}
		primary := len(args) > 2 && strings.EqualFold(args[len(args)-1], "primary")
		number := args[1:]
		if primary {
			number = number[:len(number)-1]
		}
		p, err := a.auth.AddPhone(ctx, strings.Join(number, ""), primary)
		if err != nil {
			return err
		}
		a.printf("Phone %d added.\n", p.PhoneID)
	case "primary":
		id, err := parseID(args[1:], "phone")
		if err != nil {
			return err
		}
		if err := a.auth.SetPrimaryPhone(ctx, id); err != nil {
			return err
		}
		a.printf("Phone %d is now your primary number.\n", id)
	case "delete":
		id, err := parseID(args[1:], "phone")
		if err != nil {
			return err
		}
		ok, err := a.confirm(fmt.Sprintf("Delete phone %d?", id))
		if err != nil || !ok {
			return err
		}
		if err := a.auth.DeletePhone(ctx, id); err != nil {
			return err
		}
		a.printf("Phone %d deleted.\n", id)
	default:
		return fmt.Errorf("%w: unknown phones command %q", services.ErrInvalidInput, args[0])
	}
	return nil
}
