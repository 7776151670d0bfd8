package service

// Change actions broadcast after successful mutations.
const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ChangeNotifier pushes table change events to subscribed sessions. The
// payload deliberately carries no row data: consumers react by reloading the
// full collection, which keeps reloads idempotent.
type ChangeNotifier interface {
	NotifyChange(table, action string)
}

type noopNotifier struct{}

func (noopNotifier) NotifyChange(table, action string) {}

// NewNoopNotifier returns a notifier that discards events (used in tests and
// in the migrate command).
func NewNoopNotifier() ChangeNotifier {
	return noopNotifier{}
}
