package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces synthetic identifiers for pending variants and prices.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

// NewID calls f.
func (f IDGeneratorFunc) NewID() string {
	return f()
}

// PendingIDs generates ids of the form new-<unix millis>-<random>.
var PendingIDs IDGenerator = IDGeneratorFunc(func() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s%d-%s", PendingIDPrefix, time.Now().UnixMilli(), random)
})
