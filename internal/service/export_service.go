package service

import (
	"fmt"
	"io"

	"docpool/internal/domain/entity"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Doctors"

var exportHeaders = []interface{}{
	"Doctor ID",
	"Full Name",
	"Gender",
	"Mobile",
	"Email",
	"Specialization",
	"City",
	"State",
	"Category",
	"Status",
	"Years of Experience",
}

// ExportService renders doctor lists as XLSX workbooks.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// WriteDoctors writes a single-sheet workbook with one row per doctor.
func (s *ExportService) WriteDoctors(w io.Writer, doctors []entity.Doctor) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, d := range doctors {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := exportRow(&d)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}

func exportRow(d *entity.Doctor) []interface{} {
	var years interface{}
	if d.YearsOfExperience != nil {
		years = *d.YearsOfExperience
	}

	return []interface{}{
		d.DoctorID,
		d.FullName,
		deref(d.Gender),
		d.MobileNumber,
		deref(d.Email),
		deref(d.Specialization),
		deref(d.City),
		deref(d.State),
		deref(d.DoctorCategory),
		d.EngagementStatus,
		years,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
