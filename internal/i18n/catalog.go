package i18n

import "strings"

// Catalog resolves message keys to localized text with {name} interpolation.
// Services raise keys only; rendering happens at the HTTP edge.
type Catalog struct {
	messages map[string]map[string]string
	fallback string
}

// NewCatalog builds the catalog with English as the fallback locale.
func NewCatalog() *Catalog {
	return &Catalog{
		messages: map[string]map[string]string{
			"en": en,
			"es": es,
		},
		fallback: "en",
	}
}

// Render resolves key in the given locale, interpolating {name} placeholders
// from args. Unknown locales fall back to English; unknown keys render as the
// key itself so a missing translation is visible, not silent.
func (c *Catalog) Render(locale, key string, args map[string]string) string {
	table, ok := c.messages[normalizeLocale(locale)]
	if !ok {
		table = c.messages[c.fallback]
	}
	msg, ok := table[key]
	if !ok {
		msg, ok = c.messages[c.fallback][key]
		if !ok {
			return key
		}
	}
	for name, value := range args {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}
	return msg
}

// normalizeLocale reduces tags like "en-GB" or "es_MX" to their language part.
func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	for _, sep := range []string{"-", "_", ";", ","} {
		if i := strings.Index(locale, sep); i > 0 {
			locale = locale[:i]
		}
	}
	return locale
}

var en = map[string]string{
	"purchase.errors.flight_not_found":        "Flight not found",
	"purchase.errors.booking_not_found":       "Booking not found",
	"purchase.errors.access_denied":           "You do not have access to this booking",
	"purchase.errors.too_many_seats":          "A booking can hold at most {max} seats",
	"purchase.errors.seats_unavailable":       "One or more of the requested seats are unavailable",
	"purchase.errors.invalid_state":           "This booking can no longer be modified (status: {status})",
	"purchase.errors.not_enough_seats":        "More passengers than reserved seats",
	"purchase.errors.duplicate_emails":        "Duplicate passenger emails in request",
	"purchase.errors.passenger_not_found":     "No passenger record for {email}",
	"purchase.errors.already_linked":          "Passenger {email} is already on this booking",
	"purchase.errors.passenger_not_in_booking": "Passenger {email} is not on this booking",
	"purchase.errors.seat_not_reserved":       "Seat is not reserved under this booking",
	"purchase.errors.seat_already_assigned":   "Seat is already assigned to a passenger",
	"purchase.errors.terms_not_accepted":      "You must agree to the terms and conditions",
	"purchase.errors.no_passengers":           "Add at least one passenger before confirming",
	"purchase.errors.unassigned_seats":        "Every reserved seat must be assigned to a passenger",
	"purchase.errors.booking_not_confirmed":   "Booking must be confirmed before payment (status: {status})",

	"refund.errors.ticket_not_found":        "Ticket not found",
	"refund.errors.not_found":               "Refund not found",
	"refund.errors.ticket_already_refunded": "This ticket has already been refunded",
	"refund.errors.refund_exists":           "A refund already exists for this ticket",
	"refund.errors.ticket_not_refundable":   "Ticket is not refundable (status: {status})",
	"refund.errors.no_payment":              "No completed payment exists for this booking",
	"refund.errors.not_pending":             "Only pending refunds can be removed (status: {status})",
	"refund.errors.invalid_amount":          "Refund amount must be positive",

	"passengers.errors.email_taken": "A passenger with email {email} already exists",
	"passengers.errors.not_found":   "Passenger not found",

	"auth.errors.email_taken":         "An account with this email already exists",
	"auth.errors.user_not_found":      "Account not found",
	"auth.errors.invalid_credentials": "Invalid email or password",
}

var es = map[string]string{
	"purchase.errors.flight_not_found":        "Vuelo no encontrado",
	"purchase.errors.booking_not_found":       "Reserva no encontrada",
	"purchase.errors.access_denied":           "No tiene acceso a esta reserva",
	"purchase.errors.too_many_seats":          "Una reserva admite como máximo {max} asientos",
	"purchase.errors.seats_unavailable":       "Uno o más de los asientos solicitados no están disponibles",
	"purchase.errors.invalid_state":           "Esta reserva ya no puede modificarse (estado: {status})",
	"purchase.errors.not_enough_seats":        "Más pasajeros que asientos reservados",
	"purchase.errors.duplicate_emails":        "Correos de pasajeros duplicados en la solicitud",
	"purchase.errors.passenger_not_found":     "No existe registro de pasajero para {email}",
	"purchase.errors.already_linked":          "El pasajero {email} ya está en esta reserva",
	"purchase.errors.passenger_not_in_booking": "El pasajero {email} no está en esta reserva",
	"purchase.errors.seat_not_reserved":       "El asiento no está reservado en esta reserva",
	"purchase.errors.seat_already_assigned":   "El asiento ya está asignado a un pasajero",
	"purchase.errors.terms_not_accepted":      "Debe aceptar los términos y condiciones",
	"purchase.errors.no_passengers":           "Agregue al menos un pasajero antes de confirmar",
	"purchase.errors.unassigned_seats":        "Cada asiento reservado debe estar asignado a un pasajero",
	"purchase.errors.booking_not_confirmed":   "La reserva debe confirmarse antes del pago (estado: {status})",

	"refund.errors.ticket_not_found":        "Billete no encontrado",
	"refund.errors.not_found":               "Reembolso no encontrado",
	"refund.errors.ticket_already_refunded": "Este billete ya fue reembolsado",
	"refund.errors.refund_exists":           "Ya existe un reembolso para este billete",
	"refund.errors.ticket_not_refundable":   "El billete no es reembolsable (estado: {status})",
	"refund.errors.no_payment":              "No existe un pago completado para esta reserva",
	"refund.errors.not_pending":             "Solo se pueden eliminar reembolsos pendientes (estado: {status})",
	"refund.errors.invalid_amount":          "El importe del reembolso debe ser positivo",

	"passengers.errors.email_taken": "Ya existe un pasajero con el correo {email}",
	"passengers.errors.not_found":   "Pasajero no encontrado",

	"auth.errors.email_taken":         "Ya existe una cuenta con este correo",
	"auth.errors.user_not_found":      "Cuenta no encontrada",
	"auth.errors.invalid_credentials": "Correo o contraseña inválidos",
}
