package xlsexport

import (
	"bytes"

	applicationapimodels "campus-jobs-backend/models/api/application"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportApplicationList(list []applicationapimodels.ApplicationView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const sheetName = "Applications"

var applicationHeaders = []string{"Candidate", "E-mail", "Job", "Company", "Status", "Stage", "Favorite", "Applied at", "Notes"}

func (i impl) ExportApplicationList(list []applicationapimodels.ApplicationView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("xlsx file close failed")
		}
	}()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, errors.Wrap(err, "xlsx sheet rename failed")
	}
	row, err := writeHeader(f, sheetName, 0, applicationHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx header failed")
	}
	if len(list) != 0 {
		if err = styleData(f, sheetName, len(applicationHeaders), row+1, row+len(list)); err != nil {
			return nil, errors.Wrap(err, "xlsx data style failed")
		}
		if _, err = writeApplicationRows(f, list, row); err != nil {
			return nil, errors.Wrap(err, "xlsx data failed")
		}
	}
	return f.WriteToBuffer()
}

func writeApplicationRows(f *excelize.File, list []applicationapimodels.ApplicationView, row int) (int, error) {
	for _, item := range list {
		row++
		favorite := "no"
		if item.IsFavorite {
			favorite = "yes"
		}
		values := []interface{}{
			item.CandidateName,
			item.Email,
			item.JobTitle,
			item.CompanyName,
			item.StatusName,
			item.StageName,
			favorite,
			item.CreatedAt,
			item.Notes,
		}
		for col, value := range values {
			if err := setCell(f, sheetName, col+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
