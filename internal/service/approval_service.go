package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/waynemwendwa/TMS-sub000/internal/model"
	"github.com/waynemwendwa/TMS-sub000/internal/repository"
	ws "github.com/waynemwendwa/TMS-sub000/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateApprovalRequestInput struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	Priority        string  `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	OrderTemplateID *string `json:"order_template_id"`
	ProjectID       *string `json:"project_id"`
}

type DecideApprovalInput struct {
	Status   string `json:"status" binding:"required"`
	Comments string `json:"comments"`
}

type ApprovalListFilter struct {
	Status    string
	Priority  string
	ProjectID string
}

// --- Interface ---

type ApprovalService interface {
	Create(ctx context.Context, userID, role string, req CreateApprovalRequestInput) (*model.ApprovalRequest, error)
	List(ctx context.Context, userID, role string, filter ApprovalListFilter) ([]model.ApprovalRequest, error)
	Get(ctx context.Context, userID, role, id string) (*model.ApprovalRequest, error)
	Decide(ctx context.Context, userID, role, id string, req DecideApprovalInput) (*model.ApprovalRequest, error)
	UnreadNotifications(ctx context.Context, userID string) ([]model.ApprovalNotification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
}

type approvalService struct {
	db    *gorm.DB
	users repository.UserRepository
	hub   *ws.Hub // optional; nil in tests
}

func NewApprovalService(db *gorm.DB, users repository.UserRepository, hub *ws.Hub) ApprovalService {
	return &approvalService{db: db, users: users, hub: hub}
}

// --- Implementation ---

func (s *approvalService) Create(ctx context.Context, userID, role string, req CreateApprovalRequestInput) (*model.ApprovalRequest, error) {
	if !model.IsProcurementTier(role) {
		return nil, fmt.Errorf("%w: only procurement raises approval requests", ErrForbidden)
	}

	requester, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	approval := model.ApprovalRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.ApprovalPending,
		Priority:    priority,
		RequestedBy: requester,
	}

	if req.ProjectID != nil && *req.ProjectID != "" {
		pid, parseErr := uuid.Parse(*req.ProjectID)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid project_id", ErrValidation)
		}
		approval.ProjectID = &pid
	}

	// The total is derived from the referenced template's item amounts,
	// or left null when no template is attached.
	if req.OrderTemplateID != nil && *req.OrderTemplateID != "" {
		tid, parseErr := uuid.Parse(*req.OrderTemplateID)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid order_template_id", ErrValidation)
		}

		var template model.OrderTemplate
		if findErr := s.db.WithContext(ctx).Preload("Items").First(&template, "id = ?", tid).Error; findErr != nil {
			return nil, orNotFound(findErr, "order template "+*req.OrderTemplateID)
		}

		total := decimal.Zero
		for _, item := range template.Items {
			total = total.Add(item.Amount)
		}
		approval.OrderTemplateID = &tid
		approval.TotalAmount = &total
	}

	// Resolve the recipient up front. A system without a chairman user still
	// accepts the request; there is just nobody to tell.
	chairman, err := s.users.FirstByRole(ctx, model.RoleChairman)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to resolve chairman: %w", err)
	}

	var created model.ApprovalNotification
	notified := false

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if createErr := tx.Create(&approval).Error; createErr != nil {
			return fmt.Errorf("failed to create approval request: %w", createErr)
		}

		if chairman != nil {
			created = model.ApprovalNotification{
				ApprovalRequestID: approval.ID,
				UserID:            chairman.ID,
				Type:              model.NotifTypeApprovalRequest,
				Title:             "New approval request",
				Message:           fmt.Sprintf("Approval request %q is awaiting your decision", approval.Title),
			}
			if notifErr := tx.Create(&created).Error; notifErr != nil {
				return fmt.Errorf("failed to create notification: %w", notifErr)
			}
			notified = true
		}

		details, _ := json.Marshal(map[string]interface{}{
			"title":    approval.Title,
			"priority": approval.Priority,
		})
		audit := model.AuditLog{
			UserID:     &requester,
			Action:     model.ActionCreateApprovalRequest,
			EntityID:   approval.ID.String(),
			EntityName: approval.Title,
			Details:    string(details),
		}
		if auditErr := tx.Create(&audit).Error; auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if notified {
		s.broadcastNotification(created)
	}

	return s.reload(ctx, approval.ID, requester)
}

func (s *approvalService) List(ctx context.Context, userID, role string, filter ApprovalListFilter) ([]model.ApprovalRequest, error) {
	caller, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	query := s.db.WithContext(ctx).
		Preload("Project").
		Preload("OrderTemplate").
		Preload("OrderTemplate.Items").
		Preload("Requester").
		Preload("Reviewer").
		Preload("Notifications", "user_id = ? AND is_read = ?", caller, false)

	// The chairman reviews everything; everyone else only sees what they
	// requested themselves.
	if role != model.RoleChairman {
		query = query.Where("requested_by = ?", caller)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.ProjectID != "" {
		pid, parseErr := uuid.Parse(filter.ProjectID)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid project_id", ErrValidation)
		}
		query = query.Where("project_id = ?", pid)
	}

	var approvals []model.ApprovalRequest
	if err := query.Order("created_at DESC").Find(&approvals).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch approval requests: %w", err)
	}

	return approvals, nil
}

func (s *approvalService) Get(ctx context.Context, userID, role, id string) (*model.ApprovalRequest, error) {
	approvalID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: approval request %s", ErrNotFound, id)
	}

	caller, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	approval, err := s.reload(ctx, approvalID, caller)
	if err != nil {
		return nil, err
	}

	if !model.IsChairmanTier(role) && approval.RequestedBy != caller {
		return nil, fmt.Errorf("%w: not your approval request", ErrForbidden)
	}

	return approval, nil
}

func (s *approvalService) Decide(ctx context.Context, userID, role, id string, req DecideApprovalInput) (*model.ApprovalRequest, error) {
	if role != model.RoleChairman {
		return nil, fmt.Errorf("%w: only the chairman decides approval requests", ErrForbidden)
	}

	if req.Status != model.ApprovalApproved && req.Status != model.ApprovalRejected && req.Status != model.ApprovalUnderReview {
		return nil, fmt.Errorf("%w: status must be APPROVED, REJECTED or UNDER_REVIEW", ErrValidation)
	}

	approvalID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: approval request %s", ErrNotFound, id)
	}

	reviewer, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	var approval model.ApprovalRequest
	var created model.ApprovalNotification

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if findErr := tx.First(&approval, "id = ?", approvalID).Error; findErr != nil {
			return orNotFound(findErr, "approval request "+id)
		}

		// No precondition on the current status: a decided request can be
		// re-decided.
		now := time.Now()
		approval.Status = req.Status
		approval.ReviewedBy = &reviewer
		approval.ReviewedAt = &now
		approval.Comments = req.Comments

		if saveErr := tx.Save(&approval).Error; saveErr != nil {
			return fmt.Errorf("failed to update approval request: %w", saveErr)
		}

		// Only APPROVED gets its own notification type; every other outcome
		// (including UNDER_REVIEW) carries the rejected label.
		notifType := model.NotifTypeApprovalRejected
		if req.Status == model.ApprovalApproved {
			notifType = model.NotifTypeApprovalApproved
		}

		created = model.ApprovalNotification{
			ApprovalRequestID: approval.ID,
			UserID:            approval.RequestedBy,
			Type:              notifType,
			Title:             "Approval request " + req.Status,
			Message:           fmt.Sprintf("Your approval request %q is now %s", approval.Title, req.Status),
		}
		if notifErr := tx.Create(&created).Error; notifErr != nil {
			return fmt.Errorf("failed to create notification: %w", notifErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"status":   req.Status,
			"comments": req.Comments,
		})
		audit := model.AuditLog{
			UserID:     &reviewer,
			Action:     model.ActionDecideApprovalRequest,
			EntityID:   approval.ID.String(),
			EntityName: approval.Title,
			Details:    string(details),
		}
		if auditErr := tx.Create(&audit).Error; auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.broadcastNotification(created)

	return s.reload(ctx, approval.ID, reviewer)
}

func (s *approvalService) UnreadNotifications(ctx context.Context, userID string) ([]model.ApprovalNotification, error) {
	caller, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	var notifs []model.ApprovalNotification
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", caller, false).
		Order("created_at DESC").
		Find(&notifs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return notifs, nil
}

func (s *approvalService) MarkNotificationRead(ctx context.Context, userID, id string) error {
	notifID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: notification %s", ErrNotFound, id)
	}

	caller, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	// Scoped to the caller's own notifications; anyone else's id behaves
	// like a missing record.
	result := s.db.WithContext(ctx).
		Model(&model.ApprovalNotification{}).
		Where("id = ? AND user_id = ?", notifID, caller).
		Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: notification %s", ErrNotFound, id)
	}

	return nil
}

func (s *approvalService) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	caller, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	// Idempotent: a second call matches zero rows and is a no-op.
	if err := s.db.WithContext(ctx).
		Model(&model.ApprovalNotification{}).
		Where("user_id = ? AND is_read = ?", caller, false).
		Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}

// --- Helpers ---

func (s *approvalService) reload(ctx context.Context, id uuid.UUID, caller uuid.UUID) (*model.ApprovalRequest, error) {
	var approval model.ApprovalRequest
	if err := s.db.WithContext(ctx).
		Preload("Project").
		Preload("OrderTemplate").
		Preload("OrderTemplate.Items").
		Preload("Requester").
		Preload("Reviewer").
		Preload("Notifications", "user_id = ? AND is_read = ?", caller, false).
		First(&approval, "id = ?", id).Error; err != nil {
		return nil, orNotFound(err, "approval request "+id.String())
	}
	return &approval, nil
}

// broadcastNotification pushes the notification to connected websocket
// clients, best effort; the durable copy is already committed.
func (s *approvalService) broadcastNotification(n model.ApprovalNotification) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(ws.Event{Event: "approval_notification", Data: n})
	if err != nil {
		return
	}
	select {
	case s.hub.Broadcast <- payload:
	default:
	}
}
