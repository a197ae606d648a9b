package dto

type AppointmentListDTO struct {
	ID              uint   `json:"id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Status          string `json:"status"`
	CustomerName    string `json:"customer_name"`
	StaffName       string `json:"staff_name"`
	ServiceName     string `json:"service_name"`
	TotalPrice      int    `json:"total_price"`
}
