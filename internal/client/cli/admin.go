package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/tijarah/internal/client/access"
	"github.com/dmitrijs2005/tijarah/internal/client/listing"
	"github.com/dmitrijs2005/tijarah/internal/client/models"
	"github.com/dmitrijs2005/tijarah/internal/client/services"
)

// Dashboard prints the admin statistics.
func (a *App) Dashboard(ctx context.Context, _ []string) error {
	a.navigate(access.RouteAdmin)

	st, err := a.admin.Dashboard(ctx, a.session.User())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Users\t%d total\t%d active\t%d deleted\n", st.TotalUsers, st.ActiveUsers, st.DeletedUsers)
	fmt.Fprintf(tw, "Listings\t%d total\t%d active\t%d deleted\n", st.TotalPosts, st.ActivePosts, st.DeletedPosts)
	fmt.Fprintf(tw, "\t%d draft\t%d pending review\t%d published\n", st.DraftPosts, st.PendingReviewPosts, st.PublishedPosts)
	fmt.Fprintf(tw, "Categories\t%d\t\t\n", st.TotalCategories)
	return tw.Flush()
}

// Users lists accounts. "users all" includes deleted ones.
func (a *App) Users(ctx context.Context, args []string) error {
	a.navigate(access.RouteAdmin)

	users, err := a.admin.Users(ctx, a.session.User(), includeAll(args))
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE\tSTATUS")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.UserID, u.Username, u.Email, u.RoleID, u.Status)
	}
	return tw.Flush()
}

// UserInfo prints one account with its totals.
func (a *App) UserInfo(ctx context.Context, args []string) error {
	id, err := parseID(args, "user")
	if err != nil {
		return err
	}
	a.navigate(access.RouteAdmin)

	d, err := a.admin.UserDetails(ctx, a.session.User(), id)
	if err != nil {
		return err
	}
	a.printf("User #%d %s\n", d.UserID, d.Username)
	a.printf("Name:     %s\n", d.DisplayName())
	a.printf("Email:    %s\n", d.Email)
	a.printf("Role:     %s\n", d.RoleID)
	a.printf("Status:   %s\n", d.Status)
	if d.IsDeleted {
		a.printf("Deleted:  yes ('restore %d' brings the account back)\n", d.UserID)
	}
	a.printf("Listings: %d, images: %d\n", d.TotalPosts, d.TotalImages)
	return nil
}

// Restore brings back a soft-deleted account.
func (a *App) Restore(ctx context.Context, args []string) error {
	id, err := parseID(args, "user")
	if err != nil {
		return err
	}
	a.navigate(access.RouteAdmin)

	if err := a.admin.Restore(ctx, a.session.User(), id); err != nil {
		return err
	}
	a.printf("User %d restored.\n", id)
	return nil
}

// Purge deletes an account permanently after confirmation.
func (a *App) Purge(ctx context.Context, args []string) error {
	id, err := parseID(args, "user")
	if err != nil {
		return err
	}
	a.navigate(access.RouteAdmin)

	ok, err := a.confirm(fmt.Sprintf("Permanently delete user #%d? This cannot be undone.", id))
	if err != nil || !ok {
		return err
	}
	if err := a.admin.Purge(ctx, a.session.User(), id); err != nil {
		return err
	}
	a.printf("User %d permanently deleted.\n", id)
	return nil
}

// Ban bans a user. The remaining args form the reason.
func (a *App) Ban(ctx context.Context, args []string) error {
	id, err := parseID(args, "user")
	if err != nil {
		return err
	}
	a.navigate(access.RouteAdmin)

	if err := a.admin.Ban(ctx, a.session.User(), id, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	a.printf("User %d banned.\n", id)
	return nil
}

// Activate lifts a ban.
func (a *App) Activate(ctx context.Context, args []string) error {
	id, err := parseID(args, "user")
	if err != nil {
		return err
	}
	a.navigate(access.RouteAdmin)

	if err := a.admin.Activate(ctx, a.session.User(), id); err != nil {
		return err
	}
	a.printf("User %d activated.\n", id)
	return nil
}

// SetRole changes a user's role.
func (a *App) SetRole(ctx context.Context, args []string) error {
	id, err := parseID(args, "user")
	if err != nil {
		return err
	}
	a.navigate(access.RouteAdmin)

	if len(args) < 2 {
		return fmt.Errorf("%w: role is required (admin, user or moderator)", services.ErrInvalidInput)
	}
	role, ok := parseRole(args[1])
	if !ok {
		return fmt.Errorf("%w: unknown role %q", services.ErrInvalidInput, args[1])
	}
	if err := a.admin.SetRole(ctx, a.session.User(), id, role); err != nil {
		return err
	}
	a.printf("User %d is now %s.\n", id, role)
	return nil
}

// AdminListings lists every listing with the moderation actions available on
// each. "posts all" includes deleted ones.
func (a *App) AdminListings(ctx context.Context, args []string) error {
	a.navigate(access.RouteAdmin)

	actor := a.session.User()
	items, err := a.admin.Listings(ctx, actor, includeAll(args))
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tOWNER\tSTATUS\tACTIONS")
	for _, l := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
			l.PostID, l.PostTitle, l.UserID, listing.Label(l.Status), listing.ModerationActions(l.Status, actor))
	}
	return tw.Flush()
}

// Moderate applies approve, reject or delete to a listing.
// Args: <listing-id> <action> [reason...].
func (a *App) Moderate(ctx context.Context, args []string) error {
	id, err := parseID(args, "listing")
	if err != nil {
		return err
	}
	a.navigate(access.RouteAdmin)

	if len(args) < 2 {
		return fmt.Errorf("%w: action is required (approve, reject or delete)", services.ErrInvalidInput)
	}
	action, ok := listing.ParseAction(args[1])
	if !ok {
		return fmt.Errorf("%w: unknown action %q", services.ErrInvalidInput, args[1])
	}

	actor := a.session.User()
	d, err := a.listings.Details(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := a.admin.Moderate(ctx, actor, d.Listing, action, strings.Join(args[2:], " ")); err != nil {
		return err
	}

	if target, ok := listing.TargetStatus(action); ok {
		a.printf("Listing #%d is now %s.\n", id, listing.Label(target))
	}
	return nil
}

// Category manages categories: add <name>, rename <id> <name>, delete <id>.
func (a *App) Category(ctx context.Context, args []string) error {
	a.navigate(access.RouteAdmin)

	if len(args) == 0 {
		return fmt.Errorf("%w: usage: category <add|rename|delete> ...", services.ErrInvalidInput)
	}
	actor := a.session.User()

	switch strings.ToLower(args[0]) {
	case "add":
		c, err := a.admin.CreateCategory(ctx, actor, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		a.printf("Category %d created.\n", c.CategoryID)
	case "rename":
		id, err := parseID(args[1:], "category")
		if err != nil {
			return err
		}
		if err := a.admin.RenameCategory(ctx, actor, id, strings.Join(args[2:], " ")); err != nil {
			return err
		}
		a.printf("Category %d renamed.\n", id)
	case "delete":
		id, err := parseID(args[1:], "category")
		if err != nil {
			return err
		}
		if err := a.admin.DeleteCategory(ctx, actor, id); err != nil {
			return err
		}
		a.printf("Category %d deleted.\n", id)
	default:
		return fmt.Errorf("%w: unknown category command %q", services.ErrInvalidInput, args[0])
	}
	return nil
}

// SetSupport updates the support contact shown to banned users.
func (a *App) SetSupport(ctx context.Context, _ []string) error {
	a.navigate(access.RouteAdmin)

	cur := a.settings.SupportContact(ctx)
	var in models.SupportContact
	var err error
	if in.SupportEmail, err = a.askDefault("Support email", cur.SupportEmail); err != nil {
		return err
	}
	if in.SupportWhatsApp, err = a.askDefault("Support WhatsApp number (digits only)", cur.SupportWhatsApp); err != nil {
		return err
	}
	if err := a.settings.UpdateSupportContact(ctx, a.session.User(), in); err != nil {
		return err
	}
	a.printf("Support contact updated.\n")
	return nil
}

func includeAll(args []string) bool {
	return len(args) > 0 && strings.EqualFold(args[0], "all")
}

func parseRole(s string) (models.Role, bool) {
	for _, r := range []models.Role{models.RoleAdmin, models.RoleUser, models.RoleModerator} {
		if strings.EqualFold(s, r.String()) {
			return r, true
		}
	}
	return 0, false
}
