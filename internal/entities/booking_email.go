package entities

// BookingEmailData feeds the confirmation/cancellation email template.
type BookingEmailData struct {
	CustomerName       string
	BookingCode        string
	VehicleName        string
	PickupLocation     string
	DropLocation       string
	StartTimeFormatted string
	EndTimeFormatted   string
	Status             string
	CurrentYear        int
}
