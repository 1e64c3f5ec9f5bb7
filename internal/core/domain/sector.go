package domain

// Sector is a geographic sector of the municipality.
type Sector struct {
	ID     int64  `json:"id_sector"`
	Nombre string `json:"nombre"`
	Estado string `json:"estado,omitempty"`
}
