package appointments

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus valida el status recibido por la API.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return Status(s), true
	default:
		return "", false
	}
}

// Appointment es un turno de un servicio para una mascota con un provider.
// El intervalo del turno es [StartAt, EndAt): EndAt = StartAt + duración del
// servicio al momento de agendar.
type Appointment struct {
	ID     string
	UserID string

	ServiceID  string
	PetID      string
	ProviderID string

	StartAt time.Time
	EndAt   time.Time

	Status Status
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reporta si los intervalos half-open [aStart,aEnd) y [bStart,bEnd)
// se solapan. Turnos adyacentes (uno termina donde empieza el otro) no
// cuentan como conflicto.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
