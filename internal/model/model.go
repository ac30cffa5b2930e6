package model

// Appointment is one row of the appointments table. The db tags are the
// names the store selects into, not necessarily the physical column names.
type Appointment struct {
	ID              string  `db:"id"`
	PatientName     string  `db:"patient_name"`
	PatientEmail    string  `db:"patient_email"`
	AppointmentDate string  `db:"appointment_date"`
	Purpose         *string `db:"purpose"`
}

// NewAppointment carries the fields supplied on creation.
type NewAppointment struct {
	PatientName     string
	PatientEmail    string
	AppointmentDate string
	Purpose         *string
}
