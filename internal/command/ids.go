package command

import (
	"strings"

	"github.com/google/uuid"
)

// NewID mints a short random identifier such as minion-1f3a9c2e. The
// engine records every minted id on its event, so replays reuse them.
func NewID(kind string) string {
	return kind + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}
