package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/tijarah/internal/client/access"
	"github.com/dmitrijs2005/tijarah/internal/client/listing"
	"github.com/dmitrijs2005/tijarah/internal/client/models"
	"github.com/dmitrijs2005/tijarah/internal/client/services"
)

// Browse prints one page of the public feed.
// Args: [page] [category-id] [search words...].
func (a *App) Browse(ctx context.Context, args []string) error {
	a.navigate(access.RouteBrowse)

	page, err := optionalInt(args, 0, 1)
	if err != nil {
		return err
	}
	category, err := optionalInt(args, 1, 0)
	if err != nil {
		return err
	}
	q := models.ListingQuery{PageNumber: page, CategoryID: int64(category)}
	if len(args) > 2 {
		q.Search = strings.Join(args[2:], " ")
	}

	res, err := a.listings.Browse(ctx, q)
	if err != nil {
		return err
	}
	if len(res.Items) == 0 {
		a.printf("No listings found.\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tCATEGORY\tSELLER\tRATING")
	for _, it := range res.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.1f (%d)\n",
			it.PostID, it.PostTitle, price(it.Price), it.CategoryName, it.OwnerUsername, it.AverageRating, it.ReviewCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printf("Page %d of %d, %d listings\n", res.PageNumber, res.TotalPages, res.TotalCount)
	return nil
}

// Categories prints the category list.
func (a *App) Categories(ctx context.Context, _ []string) error {
	a.navigate(access.RouteBrowse)

	cats, err := a.listings.Categories(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, c := range cats {
		fmt.Fprintf(tw, "%d\t%s\n", c.CategoryID, c.CategoryName)
	}
	return tw.Flush()
}

// Show prints one listing with the actions the viewer may take on it.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "listing")
	if err != nil {
		return err
	}
	a.navigate(access.RouteListing)

	viewer := a.session.User()
	d, err := a.listings.Details(ctx, viewer, id)
	if err != nil {
		return err
	}

	a.printf("#%d %s\n", d.PostID, d.PostTitle)
	a.printf("Price:    %s\n", price(d.Price))
	a.printf("Status:   %s\n", listing.Label(d.Status))
	a.printf("Category: %s\n", d.CategoryName)
	a.printf("Seller:   %s\n", d.OwnerFullName)
	a.printf("Posted:   %s\n", d.CreatedAt.Format("2006-01-02"))
	a.printf("\n%s\n\n", d.PostDescription)
	if d.PrimaryImageURL != "" {
		a.printf("Image:    %s\n", d.PrimaryImageURL)
	}

	if len(d.Reviews) > 0 {
		a.printf("Reviews (%.1f average):\n", d.AverageRating)
		for _, r := range d.Reviews {
			who := r.ReviewerUsername
			if who == "" {
				who = "user " + strconv.FormatInt(r.UserID, 10)
			}
			a.printf("  %s %s: %s\n", strings.Repeat("*", r.Rating), who, r.ReviewText)
		}
	}

	isOwner := owns(viewer, d)
	if acts := listing.OwnerActions(d.Status, isOwner); len(acts) > 0 {
		a.printf("You can: %s", acts)
		if listing.CanSubmit(d.Status, isOwner) {
			a.printf(", %s", listing.ActionSubmit)
		}
		a.printf("\n")
	}
	if acts := listing.ModerationActions(d.Status, viewer); len(acts) > 0 {
		a.printf("Moderation: %s\n", acts)
	}
	return nil
}

// Mine prints the signed-in user's listings in every status.
func (a *App) Mine(ctx context.Context, args []string) error {
	a.navigate(access.RouteMyListings)

	page, err := optionalInt(args, 0, 1)
	if err != nil {
		return err
	}
	res, err := a.listings.Mine(ctx, a.session.User(), page, services.DefaultRowsPerPage)
	if err != nil {
		return err
	}
	if len(res.Items) == 0 {
		a.printf("You have no listings yet. 'new' creates one.\n")
		return nil
	}
	return a.printListings(res.Items)
}

// UserListings prints one page of a member's listings.
// Args: <user-id> [page].
func (a *App) UserListings(ctx context.Context, args []string) error {
	id, err := parseID(args, "user")
	if err != nil {
		return err
	}
	a.navigate(access.RouteBrowse)

	page, err := optionalInt(args, 1, 1)
	if err != nil {
		return err
	}
	res, err := a.listings.ByUser(ctx, a.session.User(), id, page, services.DefaultRowsPerPage)
	if err != nil {
		return err
	}
	if len(res.Items) == 0 {
		a.printf("User %d has no listings to show.\n", id)
		return nil
	}
	return a.printListings(res.Items)
}

// NewListing prompts for a listing and creates it.
func (a *App) NewListing(ctx context.Context, _ []string) error {
	a.navigate(access.RouteCreateListing)

	in, err := a.askListing(models.ListingInput{})
	if err != nil {
		return err
	}
	l, err := a.listings.Create(ctx, a.session.User(), in)
	if err != nil {
		return err
	}
	a.printf("Listing #%d created (%s). 'submit %d' sends it for review.\n", l.PostID, listing.Label(l.Status), l.PostID)
	return nil
}

// EditListing prompts for new values of an owned listing.
func (a *App) EditListing(ctx context.Context, args []string) error {
	id, err := parseID(args, "listing")
	if err != nil {
		return err
	}
	a.navigate(access.RouteEditListing)

	viewer := a.session.User()
	d, err := a.listings.Details(ctx, viewer, id)
	if err != nil {
		return err
	}
	if !listing.OwnerActions(d.Status, owns(viewer, d)).Has(listing.ActionEdit) {
		return fmt.Errorf("%w: only the owner can edit listing #%d", services.ErrNotPermitted, id)
	}

	in, err := a.askListing(models.ListingInput{
		CategoryID:      d.CategoryID,
		PostTitle:       d.PostTitle,
		PostDescription: d.PostDescription,
		Price:           d.Price,
	})
	if err != nil {
		return err
	}
	if err := a.listings.Edit(ctx, viewer, id, in); err != nil {
		return err
	}
	a.printf("Listing #%d updated.\n", id)
	return nil
}

// SubmitListing sends an owned listing for review.
func (a *App) SubmitListing(ctx context.Context, args []string) error {
	id, err := parseID(args, "listing")
	if err != nil {
		return err
	}
	a.navigate(access.RouteEditListing)

	if err := a.listings.Submit(ctx, a.session.User(), id); err != nil {
		return err
	}
	a.printf("Listing #%d submitted for review.\n", id)
	return nil
}

// DeleteListing deletes an owned listing after confirmation.
func (a *App) DeleteListing(ctx context.Context, args []string) error {
	id, err := parseID(args, "listing")
	if err != nil {
		return err
	}
	a.navigate(access.RouteEditListing)

	ok, err := a.confirm(fmt.Sprintf("Delete listing #%d?", id))
	if err != nil || !ok {
		return err
	}
	if err := a.listings.Delete(ctx, a.session.User(), id); err != nil {
		return err
	}
	a.printf("Listing #%d deleted.\n", id)
	return nil
}

// Review rates a listing.
func (a *App) Review(ctx context.Context, args []string) error {
	id, err := parseID(args, "listing")
	if err != nil {
		return err
	}
	a.navigate(access.RouteListing)

	raw, err := a.ask("Rating (1-5)")
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: rating must be a number from 1 to 5", services.ErrInvalidInput)
	}
	text, err := a.ask("Your review")
	if err != nil {
		return err
	}

	if _, err := a.listings.Review(ctx, a.session.User(), id, rating, text); err != nil {
		return err
	}
	a.printf("Thanks for your review.\n")
	return nil
}

// askListing prompts for every listing field, offering cur as defaults.
func (a *App) askListing(cur models.ListingInput) (models.ListingInput, error) {
	var in models.ListingInput
	var err error

	if in.PostTitle, err = a.askDefault("Title", cur.PostTitle); err != nil {
		return in, err
	}

	in.PostDescription, err = GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return in, err
	}
	if in.PostDescription == "" {
		in.PostDescription = cur.PostDescription
	}

	rawPrice, err := a.askDefault("Price (JOD)", strconv.FormatFloat(cur.Price, 'f', -1, 64))
	if err != nil {
		return in, err
	}
	if in.Price, err = strconv.ParseFloat(rawPrice, 64); err != nil {
		return in, fmt.Errorf("%w: price must be a number", services.ErrInvalidInput)
	}

	rawCat, err := a.askDefault("Category id", strconv.FormatInt(cur.CategoryID, 10))
	if err != nil {
		return in, err
	}
	if in.CategoryID, err = strconv.ParseInt(rawCat, 10, 64); err != nil {
		return in, fmt.Errorf("%w: category id must be a number", services.ErrInvalidInput)
	}
	return in, nil
}

func (a *App) confirm(prompt string) (bool, error) {
	ans, err := a.ask(prompt + " (y/N)")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(ans) {
	case "y", "yes":
		return true, nil
	default:
		a.printf("Cancelled.\n")
		return false, nil
	}
}

func (a *App) printListings(items []models.Listing) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tSTATUS\tCREATED")
	for _, l := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			l.PostID, l.PostTitle, price(l.Price), listing.Label(l.Status), l.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

func price(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64) + " JOD"
}

func owns(viewer *models.User, d *models.ListingDetails) bool {
	return viewer != nil && (viewer.UserID == d.UserID || viewer.UserID == d.OwnerUserID)
}
