package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type stubBeneficiariaService struct {
	ports.BeneficiariaService

	createdIn     ports.BeneficiariaInput
	createdImages map[domain.ImageSide]string
	createErr     error
	image         *ports.Document
}

func (s *stubBeneficiariaService) Create(_ context.Context, _ *domain.User, in ports.BeneficiariaInput, images []ports.ImageUpload) error {
	s.createdIn = in
	s.createdImages = make(map[domain.ImageSide]string)
	for _, img := range images {
		b, _ := io.ReadAll(img.Body)
		s.createdImages[img.Side] = img.ContentType + ":" + string(b)
	}
	return s.createErr
}

func (s *stubBeneficiariaService) Image(_ context.Context, id int64, side domain.ImageSide) (*ports.Document, error) {
	if s.image == nil || id != 4 || side != domain.ImageFront {
		return nil, domain.ErrImageNotFound
	}
	return s.image, nil
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for name, content := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+name+`"; filename="`+name+`.png"`)
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		_, _ = part.Write([]byte(content))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

var tecnica = &domain.User{ID: 3, Username: "tecnica", Role: domain.RoleTecnica}

func TestBeneficiariaHandler_Create_Multipart(t *testing.T) {
	e := newTestEcho()
	stub := &stubBeneficiariaService{}
	h := NewBeneficiariaHandler(stub)

	body, contentType := multipartBody(t,
		map[string]string{"id_sector": "2", "nombre": "Rosa", "dpi": "1234567890101", "edad": "41", "habitantes_domicilio": "5"},
		map[string]string{"dpi_frente": "front-bytes"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/beneficiarias", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", tecnica)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	in := stub.createdIn
	if in.SectorID != 2 || in.Nombre != "Rosa" || in.DPI != "1234567890101" || in.Edad != 41 || in.HabitantesDomicilio != 5 {
		t.Fatalf("unexpected input: %+v", in)
	}
	if got := stub.createdImages[domain.ImageFront]; got != "image/png:front-bytes" {
		t.Fatalf("unexpected front image: %q", got)
	}
	if _, ok := stub.createdImages[domain.ImageBack]; ok {
		t.Fatalf("back image was not sent")
	}
}

func TestBeneficiariaHandler_Create_MissingFields(t *testing.T) {
	e := newTestEcho()
	h := NewBeneficiariaHandler(&stubBeneficiariaService{})

	req := jsonRequest(http.MethodPost, "/api/beneficiarias", `{"nombre":"Rosa"}`)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("user", tecnica)

	var ve *domain.ValidationError
	if err := h.Create(c); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(ve.Message, "dpi es requerido") || !strings.Contains(ve.Message, "id_sector es requerido") {
		t.Fatalf("unexpected message: %q", ve.Message)
	}
}

func TestBeneficiariaHandler_Create_DuplicateDPI(t *testing.T) {
	e := newTestEcho()
	dup := &domain.DuplicateError{Code: "DPI_DUPLICADO", Field: "dpi", Value: "1234567890101"}
	h := NewBeneficiariaHandler(&stubBeneficiariaService{createErr: dup})

	req := jsonRequest(http.MethodPost, "/api/beneficiarias", `{"id_sector":1,"nombre":"Rosa","dpi":"1234567890101"}`)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("user", tecnica)

	if err := h.Create(c); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestBeneficiariaHandler_Image_Streams(t *testing.T) {
	e := newTestEcho()
	stub := &stubBeneficiariaService{image: &ports.Document{
		Body:        io.NopCloser(strings.NewReader("png-bytes")),
		ContentType: "image/png",
		Size:        9,
	}}
	h := NewBeneficiariaHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id", "tipo")
	c.SetParamValues("4", "frente")

	if err := h.Image(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "png-bytes" {
		t.Fatalf("unexpected response: %d %q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/png" {
		t.Fatalf("unexpected content type: %s", ct)
	}
}

func TestBeneficiariaHandler_Image_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewBeneficiariaHandler(&stubBeneficiariaService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id", "tipo")
	c.SetParamValues("4", "reverso")

	if err := h.Image(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
