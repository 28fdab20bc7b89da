package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tijarah/internal/client/client"
	"github.com/dmitrijs2005/tijarah/internal/client/listing"
	"github.com/dmitrijs2005/tijarah/internal/client/models"
	"github.com/dmitrijs2005/tijarah/internal/logging"
)

// DefaultModerationReason is sent with approve and reject when the admin gives
// no reason.
const DefaultModerationReason = "Admin Policy Review"

// AdminService is the admin console. Every method requires an admin actor and
// fails with ErrNotPermitted otherwise, without calling the API.
type AdminService interface {
	Dashboard(ctx context.Context, actor *models.User) (*models.DashboardStats, error)
	Users(ctx context.Context, actor *models.User, includeDeleted bool) ([]models.User, error)
	UserDetails(ctx context.Context, actor *models.User, userID int64) (*models.UserDetails, error)
	Restore(ctx context.Context, actor *models.User, userID int64) error
	Purge(ctx context.Context, actor *models.User, userID int64) error
	Ban(ctx context.Context, actor *models.User, userID int64, reason string) error
	Activate(ctx context.Context, actor *models.User, userID int64) error
	SetRole(ctx context.Context, actor *models.User, userID int64, role models.Role) error
	Listings(ctx context.Context, actor *models.User, includeDeleted bool) ([]models.Listing, error)
	Moderate(ctx context.Context, actor *models.User, l models.Listing, a listing.Action, reason string) error
	CreateCategory(ctx context.Context, actor *models.User, name string) (*models.Category, error)
	RenameCategory(ctx context.Context, actor *models.User, id int64, name string) error
	DeleteCategory(ctx context.Context, actor *models.User, id int64) error
}

type adminService struct {
	api    client.AdminAPI
	logger logging.Logger
}

func NewAdminService(api client.AdminAPI, logger logging.Logger) AdminService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &adminService{api: api, logger: logger.With("component", "admin")}
}

func requireAdmin(actor *models.User) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if !models.IsAdmin(actor) {
		return fmt.Errorf("%w: admin only", ErrNotPermitted)
	}
	return nil
}

func (s *adminService) Dashboard(ctx context.Context, actor *models.User) (*models.DashboardStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.api.Dashboard(ctx)
}

func (s *adminService) Users(ctx context.Context, actor *models.User, includeDeleted bool) ([]models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.api.Users(ctx, includeDeleted)
}

func (s *adminService) UserDetails(ctx context.Context, actor *models.User, userID int64) (*models.UserDetails, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.api.UserDetails(ctx, userID)
}

func (s *adminService) Restore(ctx context.Context, actor *models.User, userID int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.api.RestoreUser(ctx, userID)
}

// Purge deletes an account for good. Admins cannot purge themselves.
func (s *adminService) Purge(ctx context.Context, actor *models.User, userID int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if userID == actor.UserID {
		return fmt.Errorf("%w: cannot delete yourself", ErrNotPermitted)
	}
	if err := s.api.PurgeUser(ctx, userID); err != nil {
		return err
	}
	s.logger.Info(ctx, "user permanently deleted", "user_id", userID, "by", actor.UserID)
	return nil
}

func (s *adminService) Ban(ctx context.Context, actor *models.User, userID int64, reason string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if userID == actor.UserID {
		return fmt.Errorf("%w: cannot ban yourself", ErrNotPermitted)
	}
	return s.api.UpdateUserStatus(ctx, userID, models.StatusChange{
		Status: int(models.UserBanned),
		Reason: strings.TrimSpace(reason),
	})
}

func (s *adminService) Activate(ctx context.Context, actor *models.User, userID int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.api.UpdateUserStatus(ctx, userID, models.StatusChange{Status: int(models.UserActive)})
}

func (s *adminService) SetRole(ctx context.Context, actor *models.User, userID int64, role models.Role) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	switch role {
	case models.RoleAdmin, models.RoleUser, models.RoleModerator:
	default:
		return fmt.Errorf("%w: unknown role %d", ErrInvalidInput, int(role))
	}
	return s.api.UpdateUserRole(ctx, userID, role)
}

func (s *adminService) Listings(ctx context.Context, actor *models.User, includeDeleted bool) ([]models.Listing, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.api.AdminListings(ctx, includeDeleted)
}

// Moderate applies a moderation action to l. The action must be one of
// listing.ModerationActions for l's current status and the actor.
func (s *adminService) Moderate(ctx context.Context, actor *models.User, l models.Listing, a listing.Action, reason string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !listing.ModerationActions(l.Status, actor).Has(a) {
		return fmt.Errorf("%w: %s listing in status %s", ErrNotPermitted, a, l.Status)
	}

	if a == listing.ActionDelete {
		return s.api.AdminDeleteListing(ctx, l.PostID)
	}

	target, _ := listing.TargetStatus(a)
	if reason = strings.TrimSpace(reason); reason == "" {
		reason = DefaultModerationReason
	}
	if err := s.api.UpdateListingStatus(ctx, l.PostID, target, reason); err != nil {
		return err
	}
	s.logger.Info(ctx, "listing moderated", "post_id", l.PostID, "action", string(a), "status", target.String())
	return nil
}

func (s *adminService) CreateCategory(ctx context.Context, actor *models.User, name string) (*models.Category, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	name, err := categoryName(name)
	if err != nil {
		return nil, err
	}
	return s.api.CreateCategory(ctx, name)
}

func (s *adminService) RenameCategory(ctx context.Context, actor *models.User, id int64, name string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	name, err := categoryName(name)
	if err != nil {
		return err
	}
	return s.api.UpdateCategory(ctx, id, name)
}

func (s *adminService) DeleteCategory(ctx context.Context, actor *models.User, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.api.DeleteCategory(ctx, id)
}

func categoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validate.Var(name, "required,max=100"); err != nil {
		return "", fmt.Errorf("%w: category name is required and at most 100 characters", ErrInvalidInput)
	}
	return name, nil
}
