package clinics

// Clinic es dato de referencia (remoto); la app no lo modifica.
// Distance la calcula el backend respecto del usuario (millas) y puede faltar.
type Clinic struct {
	ID          string
	Name        string
	Address     string
	Postcode    string
	PhoneNumber string
	Email       *string

	Latitude  float64
	Longitude float64

	IsEmergency bool
	Is24Hours   bool

	Services     []string
	OpeningHours map[string]string
	Distance     *float64
}

// TimeSlot es un hueco de agenda ("09:30") para un día concreto.
type TimeSlot struct {
	Time      string
	Available bool
}
