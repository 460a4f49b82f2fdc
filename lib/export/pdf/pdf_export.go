package pdfexport

import (
	"bytes"
	"fmt"
	"strings"

	applicationapimodels "campus-jobs-backend/models/api/application"
	eventapimodels "campus-jobs-backend/models/api/event"
	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// Image is an optional picture placed in the summary header
type Image struct {
	FileName string
	Body     []byte
}

type SummaryData struct {
	Application applicationapimodels.ApplicationViewExt
	Events      []eventapimodels.EventView
	Logo        *Image
}

type Provider interface {
	ApplicationSummary(data SummaryData) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
)

func (i impl) ApplicationSummary(data SummaryData) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("application summary panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Application summary", true)
	pdf.AddPage()

	left := 10.0
	if data.Logo != nil {
		if err = putImg(pdf, data.Logo); err != nil {
			return nil, err
		}
		pdf.Image(data.Logo.FileName, 10, 10, 25, 0, false, "", 0, "")
		left = 40
	}
	app := data.Application
	pdf.SetXY(left, 12)
	pdf.SetFont(fontFamily, "B", 16)
	pdf.Cell(0, 8, tr(app.CandidateName))
	pdf.Ln(8)
	pdf.SetX(left)
	pdf.SetFont(fontFamily, "", 11)
	pdf.Cell(0, lineHeight, tr(fmt.Sprintf("%s, %s", app.JobTitle, app.CompanyName)))
	pdf.Ln(lineHeight)
	if pdf.GetY() < 40 {
		pdf.SetY(40)
	}

	pdf.SetX(10)
	writeField(pdf, tr, "E-mail", app.Email)
	writeField(pdf, tr, "Applied at", app.CreatedAt)
	writeField(pdf, tr, "Status", app.StatusName)
	writeField(pdf, tr, "Stage", app.StageName)
	if app.IsFavorite {
		writeField(pdf, tr, "Favorite", "yes")
	}
	if strings.TrimSpace(app.Notes) != "" {
		writeBlock(pdf, tr, "Notes", app.Notes)
	}
	if strings.TrimSpace(app.CoverLetter) != "" {
		writeBlock(pdf, tr, "Cover letter", app.CoverLetter)
	}

	writeSection(pdf, tr, "Stage history")
	if len(app.History) == 0 {
		pdf.Cell(0, lineHeight, "No stage changes yet")
		pdf.Ln(lineHeight)
	}
	for _, h := range app.History {
		line := fmt.Sprintf("%s  %s  (%s)", h.CreatedAt, h.StageName, h.ChangedByName)
		if h.Notes != "" {
			line += ": " + h.Notes
		}
		pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
	}

	if len(data.Events) != 0 {
		writeSection(pdf, tr, "Events")
		for _, e := range data.Events {
			line := fmt.Sprintf("%s  %s  [%s, %s]", e.StartTime.Format("2006-01-02 15:04"), e.Title, e.Type, e.Status)
			pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
		}
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeField(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(35, lineHeight, tr(label), "", 0, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 11)
	pdf.CellFormat(0, lineHeight, tr(value), "", 1, "L", false, 0, "")
}

func writeBlock(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(0, lineHeight, tr(label), "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 11)
	pdf.MultiCell(0, lineHeight, tr(value), "", "L", false)
}

func writeSection(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.Ln(4)
	pdf.SetFont(fontFamily, "B", 13)
	pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
}

func putImg(pdf *fpdf.Fpdf, img *Image) error {
	imageType, err := GetImgType(img.FileName)
	if err != nil {
		return err
	}
	options := fpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(img.FileName, options, bytes.NewReader(img.Body))
	return pdf.Error()
}

func GetImgType(fileName string) (string, error) {
	pos := strings.LastIndex(fileName, ".")
	if pos < 0 || pos == len(fileName)-1 {
		return "", errors.Errorf("file has no extension: %s", fileName)
	}
	return strings.ToLower(fileName[pos+1:]), nil
}
