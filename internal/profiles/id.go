package profiles

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newID builds "profile_<unix ms>_<9 random hex chars>".
var newID = func(now time.Time) string {
	r := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("profile_%d_%s", now.UnixMilli(), r[:9])
}
