package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	catalog := NewCatalog()

	t.Run("Interpolates Args", func(t *testing.T) {
		msg := catalog.Render("en", "purchase.errors.too_many_seats", map[string]string{"max": "9"})
		assert.Equal(t, "A booking can hold at most 9 seats", msg)
	})

	t.Run("Locale Tag Normalized", func(t *testing.T) {
		msg := catalog.Render("es-MX", "purchase.errors.flight_not_found", nil)
		assert.Equal(t, "Vuelo no encontrado", msg)
	})

	t.Run("Unknown Locale Falls Back", func(t *testing.T) {
		msg := catalog.Render("fr", "purchase.errors.flight_not_found", nil)
		assert.Equal(t, "Flight not found", msg)
	})

	t.Run("Unknown Key Renders Key", func(t *testing.T) {
		msg := catalog.Render("en", "purchase.errors.nonexistent", nil)
		assert.Equal(t, "purchase.errors.nonexistent", msg)
	})
}
