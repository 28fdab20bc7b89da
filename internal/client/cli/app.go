package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/tijarah/internal/client/access"
	"github.com/dmitrijs2005/tijarah/internal/client/client"
	"github.com/dmitrijs2005/tijarah/internal/client/config"
	"github.com/dmitrijs2005/tijarah/internal/client/services"
	"github.com/dmitrijs2005/tijarah/internal/client/session"
	"github.com/dmitrijs2005/tijarah/internal/client/storage"
	"github.com/dmitrijs2005/tijarah/internal/logging"
)

// afterFn is a test seam for time.After, used by the banned-account redirect.
var afterFn = time.After

// Deps are the collaborators of an App.
type Deps struct {
	Session  *session.Session
	Auth     services.AuthService
	Listings services.ListingService
	Admin    services.AdminService
	Settings services.SettingsService
	Logger   logging.Logger
}

type App struct {
	config   *config.Config
	session  *session.Session
	auth     services.AuthService
	listings services.ListingService
	admin    services.AdminService
	settings services.SettingsService
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	route    access.Route
}

// NewApp opens the session store, connects the API client and wires the
// services and the session together.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repo, storeCloser, err := storage.Open(ctx, storage.Config{
		Backend:     c.StoreBackend,
		SQLitePath:  c.StorePath,
		RedisAddr:   c.RedisAddr,
		RedisDB:     c.RedisDB,
		RedisPrefix: c.RedisPrefix,
		PingTimeout: c.RequestTimeout,
	})
	if err != nil {
		logger.Error(ctx, "error opening session store", "backend", c.StoreBackend, "err", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(client.Options{
		BaseURL:   c.APIBaseURL,
		Timeout:   c.RequestTimeout,
		RateLimit: c.RateLimit,
		RateBurst: c.RateBurst,
		Logger:    logger,
	})
	if err != nil {
		_ = storeCloser.Close()
		return nil, err
	}

	auth := services.NewAuthService(api, repo, logger)
	sess := session.New(auth, logger, session.WithCloser(api), session.WithCloser(storeCloser))
	api.SetTokenSource(sess)
	api.OnSessionExpired(sess.Expire)

	return newApp(c, Deps{
		Session:  sess,
		Auth:     auth,
		Listings: services.NewListingService(api, logger),
		Admin:    services.NewAdminService(api, logger),
		Settings: services.NewSettingsService(api, logger),
		Logger:   logger,
	}, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, d Deps, in io.Reader, out io.Writer) *App {
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &App{
		config:   c,
		session:  d.Session,
		auth:     d.Auth,
		listings: d.Listings,
		admin:    d.Admin,
		settings: d.Settings,
		logger:   logger,
		reader:   bufio.NewReader(in),
		out:      out,
		route:    access.RouteHome,
	}
}

// Run restores the session and serves the REPL until the user exits. The
// session reference held by the App is released on return.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.session.Release(); err != nil {
			a.logger.Error(ctx, "closing session", "err", err)
		}
	}()

	a.session.Init(ctx)

	a.printf("Welcome to Tijarah (type 'help' for commands)\n")
	if u := a.session.User(); u != nil {
		a.printf("Signed in as %s\n", u.DisplayName())
	}

	runREPL(ctx, a, a.status, a.reader)
}

// Access is the guard's view of the session.
func (a *App) Access() access.Snapshot {
	return a.session.Access()
}

func (a *App) status() string {
	v := a.session.Snapshot()
	switch {
	case v.Loading:
		return "(loading)"
	case v.User == nil:
		return "(guest)"
	case v.IsAdmin:
		return fmt.Sprintf("(%s admin)", v.User.Username)
	default:
		return fmt.Sprintf("(%s)", v.User.Username)
	}
}

// navigate records the current view.
func (a *App) navigate(r access.Route) {
	if a.route != r {
		a.logger.Debug(context.Background(), "navigate", "from", string(a.route), "to", string(r))
		a.route = r
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// Commands is the command table of the REPL.
func (a *App) Commands() []Command {
	return []Command{
		{Name: "home", Usage: "home", Route: access.RouteHome, Run: a.Home},
		{Name: "login", Usage: "login", Route: access.RouteLogin, Run: a.Login},
		{Name: "register", Usage: "register", Route: access.RouteRegister, Run: a.Register},
		{Name: "logout", Usage: "logout", Route: access.RouteHome, Require: access.RequireAuthenticated, Run: a.Logout},
		{Name: "support", Usage: "support", Route: access.RouteAccountBanned, Run: a.Support},

		{Name: "browse", Aliases: []string{"b", "ls"}, Usage: "browse [page] [category-id] [search...]", Route: access.RouteBrowse, Run: a.Browse},
		{Name: "userposts", Usage: "userposts <user-id> [page]", Route: access.RouteBrowse, Run: a.UserListings},
		{Name: "categories", Usage: "categories", Route: access.RouteBrowse, Run: a.Categories},
		{Name: "show", Usage: "show <listing-id>", Route: access.RouteListing, Run: a.Show},
		{Name: "review", Usage: "review <listing-id>", Route: access.RouteListing, Require: access.RequireAuthenticated, Run: a.Review},

		{Name: "mine", Usage: "mine [page]", Route: access.RouteMyListings, Run: a.Mine},
		{Name: "new", Usage: "new", Route: access.RouteCreateListing, Run: a.NewListing},
		{Name: "edit", Usage: "edit <listing-id>", Route: access.RouteEditListing, Run: a.EditListing},
		{Name: "submit", Usage: "submit <listing-id>", Route: access.RouteEditListing, Run: a.SubmitListing},
		{Name: "delete", Usage: "delete <listing-id>", Route: access.RouteEditListing, Run: a.DeleteListing},

		{Name: "profile", Usage: "profile", Route: access.RouteProfile, Run: a.Profile},
		{Name: "editprofile", Usage: "editprofile", Route: access.RouteProfile, Run: a.EditProfile},
		{Name: "passwd", Usage: "passwd", Route: access.RouteProfile, Run: a.ChangePassword},
		{Name: "phones", Usage: "phones [add <number> [primary] | primary <phone-id> | delete <phone-id>]", Route: access.RouteProfile, Run: a.Phones},

		{Name: "dashboard", Usage: "dashboard", Route: access.RouteAdmin, Run: a.Dashboard},
		{Name: "users", Usage: "users [all]", Route: access.RouteAdmin, Run: a.Users},
		{Name: "userinfo", Usage: "userinfo <user-id>", Route: access.RouteAdmin, Run: a.UserInfo},
		{Name: "restore", Usage: "restore <user-id>", Route: access.RouteAdmin, Run: a.Restore},
		{Name: "purge", Usage: "purge <user-id>", Route: access.RouteAdmin, Run: a.Purge},
		{Name: "ban", Usage: "ban <user-id> [reason...]", Route: access.RouteAdmin, Run: a.Ban},
		{Name: "activate", Usage: "activate <user-id>", Route: access.RouteAdmin, Run: a.Activate},
		{Name: "role", Usage: "role <user-id> <admin|user|moderator>", Route: access.RouteAdmin, Run: a.SetRole},
		{Name: "posts", Usage: "posts [all]", Route: access.RouteAdmin, Run: a.AdminListings},
		{Name: "moderate", Usage: "moderate <listing-id> <approve|reject|delete> [reason...]", Route: access.RouteAdmin, Run: a.Moderate},
		{Name: "category", Usage: "category <add|rename|delete> ...", Route: access.RouteAdmin, Run: a.Category},
		{Name: "setsupport", Usage: "setsupport", Route: access.RouteAdmin, Run: a.SetSupport},
	}
}
