package export_test

import (
	"fmt"

	"github.com/google/uuid"
)

func uuidFor(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}
