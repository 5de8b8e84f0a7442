package export

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/aretw0/inspekt/pkg/core"
)

// Validator checks a rendered document before it is persisted.
type Validator interface {
	Validate(doc core.RenderedDocument) error
}

// PDFValidator rejects documents that do not parse as PDF.
// Non-PDF documents pass through untouched.
type PDFValidator struct {
	conf *model.Configuration
}

// NewPDFValidator creates a validator in relaxed mode, which accepts the
// minor deviations printers commonly produce.
func NewPDFValidator() *PDFValidator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFValidator{conf: conf}
}

func (v *PDFValidator) Validate(doc core.RenderedDocument) error {
	if doc.Ext != ".pdf" && doc.MediaType != "application/pdf" {
		return nil
	}
	if err := api.Validate(bytes.NewReader(doc.Data), v.conf); err != nil {
		return fmt.Errorf("invalid pdf: %w", err)
	}
	return nil
}
