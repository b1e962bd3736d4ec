package availability

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-slots/internal/audit"
	domain "github.com/BruksfildServices01/booking-slots/internal/domain/availability"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RuleInput struct {
	ResourceID   string
	DayOfWeek    int
	StartTime    string
	EndTime      string
	SlotDuration int
}

type BlockedDateInput struct {
	ResourceID string
	Date       string
	Reason     string
}

// ======================================================
// USE CASE
// ======================================================

// RuleEditor is the owner-facing CRUD over rules and blocked dates. Every
// mutation takes the caller explicitly and checks ownership of the resource.
type RuleEditor struct {
	store  domain.RuleStore
	cache  domain.SlotCache
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewRuleEditor(
	store domain.RuleStore,
	cache domain.SlotCache,
	audit *audit.Dispatcher,
	logger *zap.Logger,
) *RuleEditor {
	if cache == nil {
		cache = domain.NopCache{}
	}
	return &RuleEditor{
		store:  store,
		cache:  cache,
		audit:  audit,
		logger: logger,
	}
}

func (uc *RuleEditor) authorize(ctx context.Context, callerID, resourceID string) error {
	ok, err := uc.store.IsResourceOwner(ctx, resourceID, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrBusiness("forbidden")
	}
	return nil
}

func (uc *RuleEditor) changed(ctx context.Context, callerID, resourceID, action, entity, entityID string) {
	if err := uc.cache.Invalidate(ctx, resourceID); err != nil {
		uc.logger.Warn("slot cache invalidation failed",
			zap.String("resource_id", resourceID),
			zap.Error(err),
		)
	}

	uc.audit.Dispatch(audit.Event{
		ResourceID: resourceID,
		UserID:     &callerID,
		Action:     action,
		Entity:     entity,
		EntityID:   &entityID,
	})
}

// --------------------------------------------------
// Rules
// --------------------------------------------------

func (uc *RuleEditor) ListRules(ctx context.Context, callerID, resourceID string) ([]models.AvailabilityRule, error) {
	if err := uc.authorize(ctx, callerID, resourceID); err != nil {
		return nil, err
	}
	return uc.store.ListRules(ctx, resourceID)
}

func (uc *RuleEditor) CreateRule(
	ctx context.Context,
	callerID string,
	in RuleInput,
) (*models.AvailabilityRule, error) {

	rule, err := domain.NewRule(in.ResourceID, in.DayOfWeek, in.StartTime, in.EndTime, in.SlotDuration)
	if err != nil {
		return nil, err
	}

	if err := uc.authorize(ctx, callerID, rule.ResourceID); err != nil {
		return nil, err
	}

	if err := uc.store.CreateRule(ctx, &rule); err != nil {
		return nil, err
	}

	uc.changed(ctx, callerID, rule.ResourceID, "rule_created", "availability_rule", rule.ID)
	return &rule, nil
}

// UpdateRule replaces a rule's window. The rule stays on its resource.
func (uc *RuleEditor) UpdateRule(
	ctx context.Context,
	callerID string,
	ruleID string,
	in RuleInput,
) (*models.AvailabilityRule, error) {

	existing, err := uc.store.GetRule(ctx, ruleID)
	if err != nil {
		return nil, httperr.ErrBusiness("rule_not_found")
	}

	if err := uc.authorize(ctx, callerID, existing.ResourceID); err != nil {
		return nil, err
	}

	next, err := domain.NewRule(existing.ResourceID, in.DayOfWeek, in.StartTime, in.EndTime, in.SlotDuration)
	if err != nil {
		return nil, err
	}

	existing.DayOfWeek = next.DayOfWeek
	existing.StartTime = next.StartTime
	existing.EndTime = next.EndTime
	existing.SlotDuration = next.SlotDuration

	if err := uc.store.UpdateRule(ctx, existing); err != nil {
		return nil, err
	}

	uc.changed(ctx, callerID, existing.ResourceID, "rule_updated", "availability_rule", existing.ID)
	return existing, nil
}

func (uc *RuleEditor) DeleteRule(ctx context.Context, callerID string, ruleID string) error {
	existing, err := uc.store.GetRule(ctx, ruleID)
	if err != nil {
		return httperr.ErrBusiness("rule_not_found")
	}

	if err := uc.authorize(ctx, callerID, existing.ResourceID); err != nil {
		return err
	}

	if err := uc.store.DeleteRule(ctx, ruleID); err != nil {
		return err
	}

	uc.changed(ctx, callerID, existing.ResourceID, "rule_deleted", "availability_rule", ruleID)
	return nil
}

// --------------------------------------------------
// Blocked dates
// --------------------------------------------------

func (uc *RuleEditor) ListBlockedDates(ctx context.Context, callerID, resourceID string) ([]models.BlockedDate, error) {
	if err := uc.authorize(ctx, callerID, resourceID); err != nil {
		return nil, err
	}
	return uc.store.ListBlockedDates(ctx, resourceID)
}

// AddBlockedDate is idempotent per (resource, date): blocking a date twice
// returns the existing entry.
func (uc *RuleEditor) AddBlockedDate(
	ctx context.Context,
	callerID string,
	in BlockedDateInput,
) (*models.BlockedDate, error) {

	bd, err := domain.NewBlockedDate(in.ResourceID, in.Date, in.Reason)
	if err != nil {
		return nil, err
	}

	if err := uc.authorize(ctx, callerID, bd.ResourceID); err != nil {
		return nil, err
	}

	existing, err := uc.store.FindBlockedDate(ctx, bd.ResourceID, bd.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if err := uc.store.CreateBlockedDate(ctx, &bd); err != nil {
		return nil, err
	}

	uc.changed(ctx, callerID, bd.ResourceID, "blocked_date_added", "blocked_date", bd.ID)
	return &bd, nil
}

func (uc *RuleEditor) RemoveBlockedDate(ctx context.Context, callerID string, id string) error {
	existing, err := uc.store.GetBlockedDate(ctx, id)
	if err != nil {
		return httperr.ErrBusiness("blocked_date_not_found")
	}

	if err := uc.authorize(ctx, callerID, existing.ResourceID); err != nil {
		return err
	}

	if err := uc.store.DeleteBlockedDate(ctx, id); err != nil {
		return err
	}

	uc.changed(ctx, callerID, existing.ResourceID, "blocked_date_removed", "blocked_date", id)
	return nil
}
