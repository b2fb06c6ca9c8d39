package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventListLoaded          EventType = "ListLoaded"
	EventBulkActionCompleted EventType = "BulkActionCompleted"
	EventDetailSaved         EventType = "DetailSaved"
	EventDetailDeleted       EventType = "DetailDeleted"
	EventAdminCreated        EventType = "AdminCreated"
	EventError               EventType = "Error"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ListLoadedEvent is emitted when a list page has been applied
type ListLoadedEvent struct {
	Entity     string
	Tab        string
	Page       int
	Total      int
	Generation uint64
}

func (e ListLoadedEvent) Type() EventType { return EventListLoaded }

// BulkActionCompletedEvent is emitted after every item of a bulk action finished
type BulkActionCompletedEvent struct {
	Entity    string
	Action    string
	Succeeded int
	Failed    int
}

func (e BulkActionCompletedEvent) Type() EventType { return EventBulkActionCompleted }

// DetailSavedEvent is emitted when a detail screen created or updated an entity
type DetailSavedEvent struct {
	Entity  string
	No      int64
	Created bool
}

func (e DetailSavedEvent) Type() EventType { return EventDetailSaved }

// DetailDeletedEvent is emitted when a detail screen deleted an entity
type DetailDeletedEvent struct {
	Entity string
	No     int64
}

func (e DetailDeletedEvent) Type() EventType { return EventDetailDeleted }

// AdminCreatedEvent is emitted when a new admin account was created
type AdminCreatedEvent struct {
	Email string
}

func (e AdminCreatedEvent) Type() EventType { return EventAdminCreated }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
