package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserCreated     = "user.created"
	EventTypeUserDeleted     = "user.deleted"
	EventTypeLoginSucceeded  = "login.succeeded"
	EventTypePasswordChanged = "password.changed"
)

type UserCreatedEvent struct {
	BaseEvent
	UserID    int64  `json:"user_id"`
	CreatedBy int64  `json:"created_by"`
	Role      string `json:"role"`
}

func NewUserCreatedEvent(userID, createdBy int64, role string) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":    userID,
				"created_by": createdBy,
				"role":       role,
			},
		},
		UserID:    userID,
		CreatedBy: createdBy,
		Role:      role,
	}
}

type UserDeletedEvent struct {
	BaseEvent
	UserID    int64 `json:"user_id"`
	DeletedBy int64 `json:"deleted_by"`
}

func NewUserDeletedEvent(userID, deletedBy int64) *UserDeletedEvent {
	return &UserDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":    userID,
				"deleted_by": deletedBy,
			},
		},
		UserID:    userID,
		DeletedBy: deletedBy,
	}
}

type LoginSucceededEvent struct {
	BaseEvent
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

func NewLoginSucceededEvent(userID int64, email string) *LoginSucceededEvent {
	return &LoginSucceededEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLoginSucceeded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
				"email":   email,
			},
		},
		UserID: userID,
		Email:  email,
	}
}

type PasswordChangedEvent struct {
	BaseEvent
	UserID int64 `json:"user_id"`
}

func NewPasswordChangedEvent(userID int64) *PasswordChangedEvent {
	return &PasswordChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePasswordChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
			},
		},
		UserID: userID,
	}
}
