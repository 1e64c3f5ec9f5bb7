package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dmm-municipal/dmm-api/internal/api/metrics"
	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type BeneficiariaHandler struct {
	svc ports.BeneficiariaService
}

func NewBeneficiariaHandler(svc ports.BeneficiariaService) *BeneficiariaHandler {
	return &BeneficiariaHandler{svc: svc}
}

// beneficiariaRequest is sent as multipart/form-data so the DPI images can
// travel in the same request as files "dpi_frente" and "dpi_reverso".
type beneficiariaRequest struct {
	SectorID            int64  `json:"id_sector" form:"id_sector" validate:"required,gt=0"`
	Nombre              string `json:"nombre" form:"nombre" validate:"required"`
	DPI                 string `json:"dpi" form:"dpi" validate:"required"`
	FechaNacimiento     string `json:"fecha_nacimiento" form:"fecha_nacimiento"`
	Edad                int    `json:"edad" form:"edad" validate:"gte=0"`
	Direccion           string `json:"direccion" form:"direccion"`
	Telefono            string `json:"telefono" form:"telefono"`
	Correo              string `json:"correo" form:"correo" validate:"omitempty,email"`
	HabitantesDomicilio int    `json:"habitantes_domicilio" form:"habitantes_domicilio" validate:"gte=0"`
	Inmuebles           string `json:"inmuebles" form:"inmuebles"`
	Estado              string `json:"estado" form:"estado"`
}

func (r beneficiariaRequest) input() ports.BeneficiariaInput {
	return ports.BeneficiariaInput{
		SectorID:            r.SectorID,
		Nombre:              r.Nombre,
		DPI:                 r.DPI,
		FechaNacimiento:     r.FechaNacimiento,
		Edad:                r.Edad,
		Direccion:           r.Direccion,
		Telefono:            r.Telefono,
		Correo:              r.Correo,
		HabitantesDomicilio: r.HabitantesDomicilio,
		Inmuebles:           r.Inmuebles,
		Estado:              r.Estado,
	}
}

type statusRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// List returns every beneficiary with links to its proxied DPI images.
//
// @Summary      List beneficiaries
// @Tags         beneficiarias
// @Produce      json
// @Success      200  {object}  Envelope
// @Failure      401  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Router       /beneficiarias [get]
func (h *BeneficiariaHandler) List(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", list)
}

// Recent returns the most recently registered beneficiaries.
//
// @Summary      Recent beneficiaries
// @Tags         beneficiarias
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /beneficiarias/recientes/lista [get]
func (h *BeneficiariaHandler) Recent(c echo.Context) error {
	list, err := h.svc.ListRecent(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", list)
}

// Get returns one beneficiary.
//
// @Summary      Get a beneficiary
// @Tags         beneficiarias
// @Produce      json
// @Param        id   path      int  true  "Beneficiary ID"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /beneficiarias/{id} [get]
func (h *BeneficiariaHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	b, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", b)
}

// Create registers a beneficiary with optional DPI images.
//
// @Summary      Create a beneficiary
// @Tags         beneficiarias
// @Accept       multipart/form-data
// @Produce      json
// @Param        dpi_frente   formData  file  false  "DPI front image"
// @Param        dpi_reverso  formData  file  false  "DPI back image"
// @Success      201  {object}  Envelope
// @Failure      400  {object}  Envelope
// @Failure      409  {object}  Envelope
// @Router       /beneficiarias [post]
func (h *BeneficiariaHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req beneficiariaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	images, closeAll, err := formImages(c)
	if err != nil {
		return err
	}
	defer closeAll()

	if err := h.svc.Create(c.Request().Context(), actor, req.input(), images); err != nil {
		return err
	}
	countUploads(images)
	return respond(c, http.StatusCreated, "Beneficiaria creada exitosamente", nil)
}

// Update edits a beneficiary. Images not sent are kept.
//
// @Summary      Update a beneficiary
// @Tags         beneficiarias
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      int   true   "Beneficiary ID"
// @Param        dpi_frente   formData  file  false  "DPI front image"
// @Param        dpi_reverso  formData  file  false  "DPI back image"
// @Success      200  {object}  Envelope
// @Failure      400  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Failure      409  {object}  Envelope
// @Router       /beneficiarias/{id} [put]
func (h *BeneficiariaHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req beneficiariaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	images, closeAll, err := formImages(c)
	if err != nil {
		return err
	}
	defer closeAll()

	if err := h.svc.Update(c.Request().Context(), actor, id, req.input(), images); err != nil {
		return err
	}
	countUploads(images)
	return respond(c, http.StatusOK, "Beneficiaria actualizada exitosamente", nil)
}

// Delete removes a beneficiary and its images.
//
// @Summary      Delete a beneficiary
// @Tags         beneficiarias
// @Produce      json
// @Param        id   path      int  true  "Beneficiary ID"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /beneficiarias/{id} [delete]
func (h *BeneficiariaHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Beneficiaria eliminada exitosamente", nil)
}

// SetStatus changes a beneficiary's status.
//
// @Summary      Change beneficiary status
// @Tags         beneficiarias
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Beneficiary ID"
// @Param        body  body      statusRequest  true  "Nuevo estado"
// @Success      200   {object}  Envelope
// @Router       /beneficiarias/{id}/estado [patch]
func (h *BeneficiariaHandler) SetStatus(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.SetStatus(c.Request().Context(), actor, id, req.Estado); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Estado de beneficiaria actualizado exitosamente", nil)
}

// Image streams a stored DPI image.
//
// @Summary      DPI image
// @Tags         beneficiarias
// @Produce      octet-stream
// @Param        id    path  int     true  "Beneficiary ID"
// @Param        tipo  path  string  true  "frente or reverso"
// @Success      200
// @Failure      404  {object}  Envelope
// @Router       /beneficiarias/{id}/imagen/{tipo} [get]
func (h *BeneficiariaHandler) Image(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	doc, err := h.svc.Image(c.Request().Context(), id, domain.ImageSide(c.Param("tipo")))
	if err != nil {
		return err
	}
	defer doc.Body.Close()

	contentType := doc.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	resp := c.Response()
	resp.Header().Set("Cache-Control", "private, max-age=300")
	if doc.Size > 0 {
		resp.Header().Set(echo.HeaderContentLength, strconv.FormatInt(doc.Size, 10))
	}
	return c.Stream(http.StatusOK, contentType, doc.Body)
}

// formImages collects the optional DPI files of a multipart request.
func formImages(c echo.Context) ([]ports.ImageUpload, func(), error) {
	var (
		images []ports.ImageUpload
		files  []io.Closer
	)
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	for _, side := range []domain.ImageSide{domain.ImageFront, domain.ImageBack} {
		fh, err := c.FormFile("dpi_" + string(side))
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			continue
		}
		if err != nil {
			closeAll()
			return nil, nil, domain.NewValidationError("No se pudo leer la imagen de DPI %s", side)
		}
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, domain.NewValidationError("No se pudo leer la imagen de DPI %s", side)
		}
		files = append(files, f)
		images = append(images, imageUpload(side, fh, f))
	}
	return images, closeAll, nil
}

func imageUpload(side domain.ImageSide, fh *multipart.FileHeader, f multipart.File) ports.ImageUpload {
	return ports.ImageUpload{
		Side:        side,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}
}

func countUploads(images []ports.ImageUpload) {
	for _, img := range images {
		metrics.DocumentUploadsTotal.WithLabelValues(string(img.Side)).Inc()
	}
}
