package access

// Route names a view of the client.
type Route string

const (
	RouteHome          Route = "/"
	RouteBrowse        Route = "/browse"
	RouteListing       Route = "/post/:id"
	RouteLogin         Route = "/login"
	RouteRegister      Route = "/register"
	RouteAccountBanned Route = "/account-banned"
	RouteCreateListing Route = "/create-post"
	RouteEditListing   Route = "/edit-post/:id"
	RouteProfile       Route = "/profile"
	RouteMyListings    Route = "/my-posts"
	RouteAdmin         Route = "/admin"
)

// Routes declares the requirement of every view.
var Routes = map[Route]Requirement{
	RouteHome:          RequireNone,
	RouteBrowse:        RequireNone,
	RouteListing:       RequireNone,
	RouteLogin:         RequireNone,
	RouteRegister:      RequireNone,
	RouteAccountBanned: RequireNone,
	RouteCreateListing: RequireAuthenticated,
	RouteEditListing:   RequireAuthenticated,
	RouteProfile:       RequireAuthenticated,
	RouteMyListings:    RequireAuthenticated,
	RouteAdmin:         RequireAdmin,
}

// RequirementOf returns the declared requirement of r, RequireNone when r is
// not declared.
func RequirementOf(r Route) Requirement {
	return Routes[r]
}

// Enter is Decide for a declared route.
func Enter(r Route, s Snapshot) Decision {
	return Decide(RequirementOf(r), s)
}
