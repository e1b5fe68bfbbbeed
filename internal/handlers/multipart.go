package handlers

import (
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/arzan03/LandMarket/internal/models"
	"github.com/arzan03/LandMarket/internal/services"
	"github.com/arzan03/LandMarket/internal/storage"
	"github.com/gofiber/fiber/v2"
)

const (
	imagesField   = "images"
	maxImageBytes = 10 << 20
)

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// readImages loads the uploaded images of a multipart request into memory.
// Non-multipart requests carry no images.
func readImages(c *fiber.Ctx) ([]storage.ImageFile, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, &services.ValidationError{Fields: []services.FieldError{{Field: imagesField, Msg: "invalid multipart form"}}}
	}

	headers := form.File[imagesField]
	if len(headers) > models.MaxImagesPerAd {
		return nil, &services.ValidationError{Fields: []services.FieldError{{
			Field: imagesField,
			Msg:   fmt.Sprintf("at most %d images allowed", models.MaxImagesPerAd),
		}}}
	}

	files := make([]storage.ImageFile, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > maxImageBytes {
			return nil, &services.ValidationError{Fields: []services.FieldError{{
				Field: imagesField,
				Msg:   fmt.Sprintf("%s exceeds the 10MB limit", fh.Filename),
			}}}
		}
		data, err := readPart(fh)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}
		files = append(files, storage.ImageFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Data:        data,
		})
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// formFields collects the text values of a multipart or urlencoded body.
func formFields(c *fiber.Ctx) map[string]string {
	fields := map[string]string{}
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return fields
		}
		for k, v := range form.Value {
			if len(v) > 0 {
				fields[k] = strings.TrimSpace(v[0])
			}
		}
		return fields
	}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		fields[string(k)] = strings.TrimSpace(string(v))
	})
	return fields
}

type numberErrors []services.FieldError

func (n *numberErrors) parse(fields map[string]string, key string) (float64, bool) {
	raw, ok := fields[key]
	if !ok || raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		*n = append(*n, services.FieldError{Field: key, Msg: "must be a number"})
		return 0, false
	}
	return v, true
}

func (n numberErrors) err() error {
	if len(n) == 0 {
		return nil
	}
	return &services.ValidationError{Fields: n}
}

// parseLandInput reads a create request from either a form or a JSON body.
func parseLandInput(c *fiber.Ctx) (models.LandInput, error) {
	var in models.LandInput
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		if err := c.BodyParser(&in); err != nil {
			return in, &services.ValidationError{Fields: []services.FieldError{{Field: "body", Msg: "invalid JSON"}}}
		}
		return in, nil
	}

	fields := formFields(c)
	var bad numberErrors
	in.Title = fields["title"]
	in.Description = fields["description"]
	in.District = fields["district"]
	in.City = fields["city"]
	in.UserID = fields["userId"]
	in.Price, _ = bad.parse(fields, "price")
	in.Size, _ = bad.parse(fields, "size")
	return in, bad.err()
}

// parseLandPatch reads only the fields present in the request.
func parseLandPatch(c *fiber.Ctx) (models.LandPatch, error) {
	var patch models.LandPatch
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		if err := c.BodyParser(&patch); err != nil {
			return patch, &services.ValidationError{Fields: []services.FieldError{{Field: "body", Msg: "invalid JSON"}}}
		}
		return patch, nil
	}

	fields := formFields(c)
	str := func(key string) *string {
		if v, ok := fields[key]; ok {
			return &v
		}
		return nil
	}
	patch.Title = str("title")
	patch.Description = str("description")
	patch.District = str("district")
	patch.City = str("city")

	var bad numberErrors
	if v, ok := bad.parse(fields, "price"); ok {
		patch.Price = &v
	}
	if v, ok := bad.parse(fields, "size"); ok {
		patch.Size = &v
	}
	return patch, bad.err()
}
