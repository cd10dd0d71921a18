package port

import "context"

// ChatClient abstracts a chat-completion model endpoint. Implementations
// return the raw assistant message text; they do not interpret it.
type ChatClient interface {
	Chat(ctx context.Context, system, user string) (string, error)
}
