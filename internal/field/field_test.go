package field

import (
	"context"
	"errors"

	"github.com/nao1215/gtcidash/internal/database"
	"github.com/nao1215/gtcidash/internal/notify"
)

var errWrite = errors.New("disk full")

// failingStore accepts reads but rejects every write.
type failingStore struct {
	*database.MemoryStore
}

func (failingStore) Set(context.Context, string, string) error {
	return errWrite
}

func (failingStore) SetMany(context.Context, map[string]string) error {
	return errWrite
}

// recorder collects notifications.
type recorder struct {
	messages []string
}

func (r *recorder) Notify(message string) {
	r.messages = append(r.messages, message)
}

var _ notify.Notifier = (*recorder)(nil)
