package domain

import "fmt"

// ImageSide selects one of the two identity-document (DPI) images.
type ImageSide string

const (
	ImageFront ImageSide = "frente"
	ImageBack  ImageSide = "reverso"
)

func (s ImageSide) Valid() bool { return s == ImageFront || s == ImageBack }

// Beneficiaria is a registered beneficiary. DPIFront and DPIBack are object
// keys in the document store, never public URLs.
type Beneficiaria struct {
	ID                  int64  `json:"id_beneficiario"`
	SectorID            int64  `json:"id_sector"`
	Sector              string `json:"sector,omitempty"`
	Nombre              string `json:"nombre"`
	DPI                 string `json:"dpi"`
	DPIFront            string `json:"dpi_frente,omitempty"`
	DPIBack             string `json:"dpi_reverso,omitempty"`
	FechaNacimiento     string `json:"fecha_nacimiento"`
	Edad                int    `json:"edad"`
	Direccion           string `json:"direccion"`
	Telefono            string `json:"telefono"`
	Correo              string `json:"correo"`
	HabitantesDomicilio int    `json:"habitantes_domicilio"`
	Inmuebles           string `json:"inmuebles"`
	Estado              string `json:"estado"`
	FechaRegistro       string `json:"fecha_registro,omitempty"`

	// DPIFrontURL and DPIBackURL point at the authenticated image endpoint.
	DPIFrontURL string `json:"dpi_frente_url,omitempty"`
	DPIBackURL  string `json:"dpi_reverso_url,omitempty"`
}

// ImagePath is the API path that streams side of beneficiary id.
func ImagePath(id int64, side ImageSide) string {
	return fmt.Sprintf("/api/beneficiarias/%d/imagen/%s", id, side)
}

// LinkImages sets the image URLs for every side that has a stored object.
func (b *Beneficiaria) LinkImages() {
	if b.DPIFront != "" {
		b.DPIFrontURL = ImagePath(b.ID, ImageFront)
	}
	if b.DPIBack != "" {
		b.DPIBackURL = ImagePath(b.ID, ImageBack)
	}
}

// ImageKey returns the stored object key for side.
func (b *Beneficiaria) ImageKey(side ImageSide) string {
	if side == ImageBack {
		return b.DPIBack
	}
	return b.DPIFront
}
