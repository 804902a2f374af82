package notify

import "context"

// Publisher pushes an event to every listener currently registered under
// a user identity. Delivery is fire-and-forget: callers that must not
// fail on a lost notification are expected to log and swallow the error.
//
// The publisher is injected into services at construction so tests can
// substitute a double.
type Publisher interface {
	Publish(ctx context.Context, userId string, event string, payload any) error
}
