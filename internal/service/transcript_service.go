package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
	"github.com/campusworks/records-api/pkg/export"
)

type transcriptStudentRepository interface {
	FindByID(ctx context.Context, id int64) (*models.StudentDetail, error)
}

// TranscriptFormat selects the rendered document type.
type TranscriptFormat string

const (
	FormatCSV TranscriptFormat = "csv"
	FormatPDF TranscriptFormat = "pdf"
)

// Transcript is a rendered score report ready to be served as a download.
type Transcript struct {
	FileName    string
	ContentType string
	Content     []byte
}

// TranscriptService renders a student's score history as a downloadable
// document.
type TranscriptService struct {
	scores   scoreRepository
	students transcriptStudentRepository
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewTranscriptService constructs the transcript service.
func NewTranscriptService(scores scoreRepository, students transcriptStudentRepository, logger *zap.Logger) *TranscriptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptService{
		scores:   scores,
		students: students,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// Export renders the student's transcript in the requested format.
func (s *TranscriptService) Export(ctx context.Context, studentID int64, format TranscriptFormat) (*Transcript, error) {
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, notFoundOr(err, "student not found")
	}
	scores, err := s.scores.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scores")
	}

	data := transcriptDataset(scores)
	base := fmt.Sprintf("transcript_%s", student.StudentNo)
	switch format {
	case FormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
		}
		return &Transcript{FileName: base + ".csv", ContentType: "text/csv", Content: content}, nil
	default:
		title := fmt.Sprintf("Transcript - %s (%s)", student.Name, student.StudentNo)
		content, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
		}
		return &Transcript{FileName: base + ".pdf", ContentType: "application/pdf", Content: content}, nil
	}
}

func transcriptDataset(scores []models.ScoreDetail) export.Dataset {
	headers := []string{"Year", "Semester", "Course", "Credit", "Teacher", "Status", "Score"}
	rows := make([]map[string]string, 0, len(scores))
	for _, sc := range scores {
		value := ""
		if sc.Score.Score != nil {
			value = strconv.FormatFloat(*sc.Score.Score, 'f', 1, 64)
		}
		rows = append(rows, map[string]string{
			"Year":     strconv.Itoa(sc.Year),
			"Semester": sc.Semester,
			"Course":   sc.CourseName,
			"Credit":   strconv.FormatFloat(sc.Credit, 'f', 1, 64),
			"Teacher":  sc.TeacherName,
			"Status":   string(sc.Status),
			"Score":    value,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
