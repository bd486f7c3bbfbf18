package facility

import (
	"time"

	"github.com/asr-diagnostics/lims-service/internal/pagination"
)

// Hospital is a registration centre. Its city feeds the location part of
// every UHID issued there.
type Hospital struct {
	ID        int64     `json:"id"`
	Name      string    `json:"hospital_name"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Nodal is a nodal processing centre that samples are routed to.
type Nodal struct {
	ID         int64     `json:"id"`
	HospitalID int64     `json:"hospital_id"`
	Name       string    `json:"nodal_name"`
	Address    string    `json:"address,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateHospitalRequest struct {
	Name    string `json:"hospital_name"`
	City    string `json:"city"`
	State   string `json:"state"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type CreateNodalRequest struct {
	HospitalID int64  `json:"hospital_id"`
	Name       string `json:"nodal_name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
}

type PaginatedHospitalsResponse struct {
	Success    bool            `json:"success"`
	Hospitals  []Hospital      `json:"hospitals"`
	Pagination pagination.Meta `json:"pagination"`
}
