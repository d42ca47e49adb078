package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("customer name is required")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("product", 999)))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicate")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))

	wrapped := fmt.Errorf("create order: %w", Persistence("insert order", sql.ErrConnDone))
	assert.Equal(t, KindPersistence, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, sql.ErrConnDone))
}

func TestNotFoundNamesIdentifier(t *testing.T) {
	assert.Equal(t, "product 999 not found", NotFound("product", 999).Error())
}
